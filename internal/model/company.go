package model

// PlatformType is a coarse business-category tag derived from website content.
type PlatformType string

const (
	PlatformNoCode            PlatformType = "no-code"
	PlatformCRM               PlatformType = "crm"
	PlatformProjectManagement PlatformType = "project-management"
	PlatformEcommerce         PlatformType = "ecommerce"
	PlatformAutomation        PlatformType = "automation"
	PlatformAnalytics         PlatformType = "analytics"
	PlatformCommunication     PlatformType = "communication"
	PlatformUnknown           PlatformType = "unknown"
)

// Platform is the classified platform category plus a confidence count
// (the number of keyword occurrences backing the winning category).
type Platform struct {
	Type       PlatformType `json:"type"`
	Confidence int          `json:"confidence"`
}

// BusinessIndicators holds growth and traction signals detected on a website.
type BusinessIndicators struct {
	HasCustomers    bool     `json:"has_customers"`
	CustomerMention string   `json:"customer_mention,omitempty"` // e.g. "10,000 customers"
	HasFunding      bool     `json:"has_funding"`
	HasCareers      bool     `json:"has_careers"`
	HasPress        bool     `json:"has_press"`
	HasCaseStudies  bool     `json:"has_case_studies"`
	Growth          []string `json:"growth,omitempty"`
}

// TechStack holds best-effort technology detection results.
type TechStack struct {
	Frameworks []string `json:"frameworks,omitempty"`
	Analytics  []string `json:"analytics,omitempty"`
	Server     string   `json:"server,omitempty"`
}

// PricingModel is the detected pricing scheme.
type PricingModel string

const (
	PricingSubscription PricingModel = "subscription"
	PricingPerSeat      PricingModel = "per-seat"
	PricingUnknown      PricingModel = "unknown"
)

// PricingInfo holds pricing-page signals.
type PricingInfo struct {
	HasPricingPage bool         `json:"has_pricing_page"`
	Model          PricingModel `json:"model"`
	HasEnterprise  bool         `json:"has_enterprise"`
}

// ContentFlags are derived booleans from the page body used by the fit scorer.
type ContentFlags struct {
	HasAPI        bool `json:"has_api"`
	HasDevelopers bool `json:"has_developers"`
	HasEnterprise bool `json:"has_enterprise"`
}

// Analysis is the Content Analyzer output for one website. A zero-value
// Analysis means the site could not be fetched or no website was resolved;
// scoring treats every absent signal as zero points.
type Analysis struct {
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Keywords    string             `json:"keywords,omitempty"`
	Platform    Platform           `json:"platform"`
	Indicators  BusinessIndicators `json:"indicators"`
	TechStack   TechStack          `json:"tech_stack"`
	Pricing     PricingInfo        `json:"pricing"`
	Content     ContentFlags       `json:"content"`
	Analyzed    bool               `json:"analyzed"` // false when the fetch failed or no website was resolved
}

// CompanyRecord aggregates everything known about one company after research.
// Immutable once built within a research call.
type CompanyRecord struct {
	Name     string   `json:"name"`
	Website  string   `json:"website,omitempty"` // empty when resolution failed
	Analysis Analysis `json:"analysis"`
}

// Domain returns the host of the company website, stripped of the www prefix.
// Empty when no website is known.
func (c CompanyRecord) Domain() string {
	return DomainOf(c.Website)
}

// CompanyInput identifies a company to research. Website is optional; when
// empty the resolver guesses one.
type CompanyInput struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}
