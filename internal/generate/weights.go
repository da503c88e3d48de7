package generate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/ticket-pipeline/internal/schema"
	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// Weights holds the categorical distributions and lifecycle tunables
// the generator draws from. Distribution shape is configuration, not
// schema: operators may load overrides from a YAML file, but every
// weight table must fully cover its closed set.
type Weights struct {
	Severity map[schema.Severity]float64 `yaml:"severity"`
	Category map[schema.Category]float64 `yaml:"category"`
	Channel  map[schema.Channel]float64  `yaml:"channel"`
	Market   map[string]float64          `yaml:"market"`

	// Status split for tickets the lifecycle model marks resolved.
	ResolvedStatus map[schema.Status]float64 `yaml:"resolved_status"`
	// Status split for tickets still open.
	OpenStatus map[schema.Status]float64 `yaml:"open_status"`

	// P(resolved | age) = ResolveCeiling * ageH / (ageH + ResolveHalfLifeHours).
	ResolveCeiling       float64 `yaml:"resolve_ceiling"`
	ResolveHalfLifeHours float64 `yaml:"resolve_half_life_hours"`

	// Resolution duration is gaussian around the severity's SLA target:
	// mean = ResolutionMeanFactor * target, sigma = ResolutionSigmaFactor * target.
	ResolutionMeanFactor  float64 `yaml:"resolution_mean_factor"`
	ResolutionSigmaFactor float64 `yaml:"resolution_sigma_factor"`

	DealersPerMarket int `yaml:"dealers_per_market"`
}

// DefaultWeights returns the built-in distribution, tuned for a
// realistic urgency and channel mix (P1 rare, dealer portal dominant).
func DefaultWeights() Weights {
	return Weights{
		Severity: map[schema.Severity]float64{
			schema.SeverityP1: 0.05,
			schema.SeverityP2: 0.15,
			schema.SeverityP3: 0.45,
			schema.SeverityP4: 0.35,
		},
		Category: map[schema.Category]float64{
			schema.CategoryEngine:       0.12,
			schema.CategoryElectrical:   0.14,
			schema.CategoryInfotainment: 0.18,
			schema.CategoryBodywork:     0.08,
			schema.CategorySuspension:   0.07,
			schema.CategoryBrake:        0.09,
			schema.CategoryHVAC:         0.10,
			schema.CategoryWarranty:     0.12,
			schema.CategoryRecall:       0.05,
			schema.CategoryOther:        0.05,
		},
		Channel: map[schema.Channel]float64{
			schema.ChannelPhone:        0.25,
			schema.ChannelEmail:        0.20,
			schema.ChannelDealerPortal: 0.30,
			schema.ChannelApp:          0.15,
			schema.ChannelWalkIn:       0.10,
		},
		Market: map[string]float64{
			"DE": 0.25, "US": 0.20, "GB": 0.10, "CN": 0.15,
			"FR": 0.07, "IT": 0.06, "JP": 0.05, "KR": 0.04,
			"AU": 0.04, "AE": 0.04,
		},
		ResolvedStatus: map[schema.Status]float64{
			schema.StatusResolved: 0.70,
			schema.StatusClosed:   0.30,
		},
		OpenStatus: map[schema.Status]float64{
			schema.StatusOpen:       0.35,
			schema.StatusInProgress: 0.40,
			schema.StatusWaiting:    0.25,
		},
		ResolveCeiling:        0.92,
		ResolveHalfLifeHours:  48,
		ResolutionMeanFactor:  0.8,
		ResolutionSigmaFactor: 0.6,
		DealersPerMarket:      8,
	}
}

// LoadWeights reads a YAML weights file. Any table present in the file
// replaces the corresponding default table wholesale; scalar tunables
// override only when set.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, util.NewIOError("read weights file", path, err)
	}
	var overrides Weights
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Weights{}, util.NewConfigError(fmt.Sprintf("parse weights file: %v", err), map[string]any{"path": path})
	}

	w := DefaultWeights()
	if overrides.Severity != nil {
		w.Severity = overrides.Severity
	}
	if overrides.Category != nil {
		w.Category = overrides.Category
	}
	if overrides.Channel != nil {
		w.Channel = overrides.Channel
	}
	if overrides.Market != nil {
		w.Market = overrides.Market
	}
	if overrides.ResolvedStatus != nil {
		w.ResolvedStatus = overrides.ResolvedStatus
	}
	if overrides.OpenStatus != nil {
		w.OpenStatus = overrides.OpenStatus
	}
	if overrides.ResolveCeiling != 0 {
		w.ResolveCeiling = overrides.ResolveCeiling
	}
	if overrides.ResolveHalfLifeHours != 0 {
		w.ResolveHalfLifeHours = overrides.ResolveHalfLifeHours
	}
	if overrides.ResolutionMeanFactor != 0 {
		w.ResolutionMeanFactor = overrides.ResolutionMeanFactor
	}
	if overrides.ResolutionSigmaFactor != 0 {
		w.ResolutionSigmaFactor = overrides.ResolutionSigmaFactor
	}
	if overrides.DealersPerMarket != 0 {
		w.DealersPerMarket = overrides.DealersPerMarket
	}

	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks full coverage of the closed sets and positive mass.
func (w Weights) Validate() error {
	if err := coverage("severity", w.Severity, schema.Severities()); err != nil {
		return err
	}
	if err := coverage("category", w.Category, schema.Categories()); err != nil {
		return err
	}
	if err := coverage("channel", w.Channel, schema.Channels()); err != nil {
		return err
	}
	if err := coverage("market", w.Market, schema.Markets()); err != nil {
		return err
	}
	if err := coverage("resolved_status", w.ResolvedStatus, []schema.Status{schema.StatusResolved, schema.StatusClosed}); err != nil {
		return err
	}
	if err := coverage("open_status", w.OpenStatus, []schema.Status{schema.StatusOpen, schema.StatusInProgress, schema.StatusWaiting}); err != nil {
		return err
	}
	if w.ResolveCeiling <= 0 || w.ResolveCeiling > 1 {
		return util.NewConfigError("resolve_ceiling must be in (0, 1]", map[string]any{"parameter": "resolve_ceiling"})
	}
	if w.ResolveHalfLifeHours <= 0 {
		return util.NewConfigError("resolve_half_life_hours must be positive", map[string]any{"parameter": "resolve_half_life_hours"})
	}
	if w.ResolutionMeanFactor <= 0 || w.ResolutionSigmaFactor < 0 {
		return util.NewConfigError("resolution factors must be positive", map[string]any{"parameter": "resolution_mean_factor"})
	}
	if w.DealersPerMarket <= 0 {
		return util.NewConfigError("dealers_per_market must be positive", map[string]any{"parameter": "dealers_per_market"})
	}
	return nil
}

func coverage[K comparable](table string, weights map[K]float64, domain []K) error {
	for _, key := range domain {
		mass, ok := weights[key]
		if !ok || mass <= 0 {
			return util.NewConfigError(
				fmt.Sprintf("weights table %q must assign positive mass to %v", table, key),
				map[string]any{"table": table, "value": fmt.Sprint(key)},
			)
		}
	}
	if len(weights) != len(domain) {
		return util.NewConfigError(
			fmt.Sprintf("weights table %q names values outside its closed set", table),
			map[string]any{"table": table},
		)
	}
	return nil
}

// pick draws one value from the ordered domain using the weight table.
// Iterating the canonical slice keeps draws independent of map order.
func pick[K comparable](rnd func() float64, weights map[K]float64, domain []K) K {
	var total float64
	for _, key := range domain {
		total += weights[key]
	}
	target := rnd() * total
	var cum float64
	for _, key := range domain {
		cum += weights[key]
		if target < cum {
			return key
		}
	}
	return domain[len(domain)-1]
}
