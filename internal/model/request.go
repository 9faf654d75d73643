package model

// CalculationRequest carries one client's insurance history as extracted
// upstream. All dates arrive as raw YYYY-MM-DD strings; the normalizer is
// the only place they are parsed.
type CalculationRequest struct {
	ReferenceDate string      `json:"reference_date"`
	History       []RawRecord `json:"history"`
}

type RawRecord struct {
	Issuer            string      `json:"issuer"`
	SubscriptionDate  string      `json:"subscription_date"`
	TerminationDate   string      `json:"termination_date,omitempty"`
	EditionDate       string      `json:"edition_date"`
	StatedCoefficient *float64    `json:"stated_coefficient,omitempty"`
	Claims            []RawClaim  `json:"claims,omitempty"`
	Drivers           []RawDriver `json:"drivers,omitempty"`
}

type RawClaim struct {
	Date           string `json:"date"`
	Responsibility string `json:"responsibility"`
	Category       string `json:"category,omitempty"`
}

type RawDriver struct {
	Role            string `json:"role"`
	LicenseDate     string `json:"license_date,omitempty"`
	DesignationDate string `json:"designation_date,omitempty"`
}
