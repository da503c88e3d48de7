package schema

import "time"

// Severity ranks ticket urgency from P1 (critical) down to P4 (low).
type Severity string

const (
	SeverityP1 Severity = "P1"
	SeverityP2 Severity = "P2"
	SeverityP3 Severity = "P3"
	SeverityP4 Severity = "P4"
)

// Severities returns the closed severity set in urgency order.
func Severities() []Severity {
	return []Severity{SeverityP1, SeverityP2, SeverityP3, SeverityP4}
}

// Valid reports whether the severity is a member of the closed set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityP1, SeverityP2, SeverityP3, SeverityP4:
		return true
	}
	return false
}

// Status enumerates lifecycle states for tickets.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusWaiting    Status = "Waiting on Customer"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// Statuses returns the closed status set in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusWaiting, StatusResolved, StatusClosed}
}

// Valid reports whether the status is a member of the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusWaiting, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Terminal reports whether the status carries a resolution timestamp.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Category enumerates issue types.
type Category string

const (
	CategoryEngine       Category = "Engine & Drivetrain"
	CategoryElectrical   Category = "Electrical System"
	CategoryInfotainment Category = "Infotainment / iDrive"
	CategoryBodywork     Category = "Bodywork & Paint"
	CategorySuspension   Category = "Suspension & Steering"
	CategoryBrake        Category = "Brake System"
	CategoryHVAC         Category = "HVAC / Climate"
	CategoryWarranty     Category = "Warranty Claim"
	CategoryRecall       Category = "Recall / Campaign"
	CategoryOther        Category = "Other"
)

// Categories returns the closed category set.
func Categories() []Category {
	return []Category{
		CategoryEngine, CategoryElectrical, CategoryInfotainment,
		CategoryBodywork, CategorySuspension, CategoryBrake,
		CategoryHVAC, CategoryWarranty, CategoryRecall, CategoryOther,
	}
}

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Channel enumerates intake channels.
type Channel string

const (
	ChannelPhone        Channel = "Phone"
	ChannelEmail        Channel = "Email"
	ChannelDealerPortal Channel = "Dealer Portal"
	ChannelApp          Channel = "BMW App"
	ChannelWalkIn       Channel = "Walk-In"
)

// Channels returns the closed channel set.
func Channels() []Channel {
	return []Channel{ChannelPhone, ChannelEmail, ChannelDealerPortal, ChannelApp, ChannelWalkIn}
}

// Valid reports whether the channel is a member of the closed set.
func (c Channel) Valid() bool {
	switch c {
	case ChannelPhone, ChannelEmail, ChannelDealerPortal, ChannelApp, ChannelWalkIn:
		return true
	}
	return false
}

// Markets lists the ISO 3166-1 alpha-2 codes the generator draws from.
// The market field itself is validated by shape, not membership, so a
// schema-conformant external source may carry other country codes.
func Markets() []string {
	return []string{"DE", "US", "GB", "CN", "FR", "IT", "JP", "KR", "AU", "AE"}
}

// ModelSeriesValues lists model series used for synthetic data.
func ModelSeriesValues() []string {
	return []string{
		"3 Series", "5 Series", "7 Series", "X1", "X3", "X5", "X7",
		"i4", "iX", "iX3", "Z4", "M3", "M5", "2 Series Gran Coupé",
	}
}

// Bounds for the model_year field.
const (
	ModelYearMin = 2018
	ModelYearMax = 2026
)

// SLATarget returns the maximum resolution duration permitted for a
// severity before the ticket counts as breached.
func SLATarget(s Severity) time.Duration {
	switch s {
	case SeverityP1:
		return 4 * time.Hour
	case SeverityP2:
		return 8 * time.Hour
	case SeverityP3:
		return 48 * time.Hour
	case SeverityP4:
		return 120 * time.Hour
	}
	return 0
}
