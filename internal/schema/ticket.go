package schema

import (
	"time"

	"github.com/spec-kit/ticket-pipeline/pkg/util"
)

// Ticket is one support case. Values are immutable after creation;
// the JSON encoding of a Ticket is the row-oriented interchange record
// between the generator and the transform.
type Ticket struct {
	TicketID    string     `json:"ticket_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	Severity    Severity   `json:"severity"`
	Status      Status     `json:"status"`
	Category    Category   `json:"category"`
	Channel     Channel    `json:"channel"`
	Market      string     `json:"market"`
	DealerID    string     `json:"dealer_id"`
	CustomerID  string     `json:"customer_id"`
	VINLast6    string     `json:"vin_last6"`
	ModelSeries string     `json:"model_series"`
	ModelYear   int        `json:"model_year"`
	SLABreached bool       `json:"sla_breached"`
}

// Validate checks the ticket against the domain schema: required
// fields, closed enumerations, temporal ordering, and bounded ranges.
// An unrecognized enum value is a schema error, never coerced.
func (t Ticket) Validate() error {
	if t.TicketID == "" {
		return invalid("ticket_id is required", "ticket_id")
	}
	if !t.Severity.Valid() {
		return invalid("unrecognized severity", "severity")
	}
	if !t.Status.Valid() {
		return invalid("unrecognized status", "status")
	}
	if !t.Category.Valid() {
		return invalid("unrecognized category", "category")
	}
	if !t.Channel.Valid() {
		return invalid("unrecognized channel", "channel")
	}
	if !validMarket(t.Market) {
		return invalid("market must be an ISO alpha-2 code", "market")
	}
	if t.DealerID == "" {
		return invalid("dealer_id is required", "dealer_id")
	}
	if t.CustomerID == "" {
		return invalid("customer_id is required", "customer_id")
	}
	if len(t.VINLast6) != 6 {
		return invalid("vin_last6 must be 6 characters", "vin_last6")
	}
	if t.ModelSeries == "" {
		return invalid("model_series is required", "model_series")
	}
	if t.ModelYear < ModelYearMin || t.ModelYear > ModelYearMax {
		return invalid("model_year out of range", "model_year")
	}
	if t.CreatedAt.IsZero() || t.UpdatedAt.IsZero() {
		return invalid("created_at and updated_at are required", "created_at")
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return invalid("updated_at precedes created_at", "updated_at")
	}
	if t.Status.Terminal() {
		if t.ResolvedAt == nil {
			return invalid("terminal status requires resolved_at", "resolved_at")
		}
		if t.ResolvedAt.Before(t.CreatedAt) {
			return invalid("resolved_at precedes created_at", "resolved_at")
		}
	} else if t.ResolvedAt != nil {
		return invalid("non-terminal status carries resolved_at", "resolved_at")
	}
	return nil
}

func invalid(message, field string) error {
	return util.NewValidationError(message, map[string]any{"field": field})
}

func validMarket(m string) bool {
	if len(m) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if m[i] < 'A' || m[i] > 'Z' {
			return false
		}
	}
	return true
}
