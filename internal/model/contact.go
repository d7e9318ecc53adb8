package model

import (
	"net/url"
	"strings"
	"time"
)

// ContactSource records where a contact was extracted from.
type ContactSource string

const (
	SourceTeamPage       ContactSource = "website_team_page"
	SourceContactPage    ContactSource = "contact_page"
	SourceTextExtraction ContactSource = "text_extraction"
	SourceResearchNeeded ContactSource = "research_needed"
	SourceResearchFailed ContactSource = "research_failed"
)

// Priority is the outreach priority band for a contact.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Provenance tags how a piece of contact data was obtained so downstream
// consumers never treat a guess as a fact.
type Provenance string

const (
	ProvenanceScraped     Provenance = "scraped"
	ProvenanceSynthesized Provenance = "synthesized" // e.g. a guessed firstname.lastname@ address
	ProvenancePlaceholder Provenance = "placeholder" // manual-research stub, scores are sentinels
)

// DeliverabilityRisk estimates whether an email is likely reachable.
type DeliverabilityRisk string

const (
	RiskLow    DeliverabilityRisk = "low"
	RiskMedium DeliverabilityRisk = "medium"
	RiskHigh   DeliverabilityRisk = "high"
)

// EmailValidation holds syntax validation and a deliverability estimate.
type EmailValidation struct {
	IsValid bool               `json:"is_valid"`
	Risk    DeliverabilityRisk `json:"risk"`
	Reason  string             `json:"reason,omitempty"`
}

// QualityBreakdown itemizes the contact quality score contributions.
type QualityBreakdown struct {
	Title    int `json:"title"`
	Email    int `json:"email"`
	Source   int `json:"source"`
	LinkedIn int `json:"linkedin"`
	Recency  int `json:"recency"`
}

// Contact is a structured person record extracted from a company website.
type Contact struct {
	Name                   string           `json:"name"`
	Title                  string           `json:"title,omitempty"`
	Email                  string           `json:"email,omitempty"`
	LinkedIn               string           `json:"linkedin,omitempty"`
	Source                 ContactSource    `json:"source"`
	Priority               Priority         `json:"priority"`
	Provenance             Provenance       `json:"provenance"`
	Verified               bool             `json:"verified"`
	QualityScore           int              `json:"quality_score"`
	QualityBreakdown       QualityBreakdown `json:"quality_breakdown"`
	EmailValidation        EmailValidation  `json:"email_validation"`
	RecommendedForOutreach bool             `json:"recommended_for_outreach"`
	Note                   string           `json:"note,omitempty"`
	ExtractedAt            time.Time        `json:"extracted_at"`
}

// IsPlaceholder reports whether this contact is a synthesized manual-research
// stub whose quality score is a sentinel, not a measured value.
func (c Contact) IsPlaceholder() bool {
	return c.Provenance == ProvenancePlaceholder
}

// DomainOf extracts the host from a URL string, stripping any www prefix.
// Returns "" for empty or unparsable input.
func DomainOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// EmailDomain returns the domain part of an email address, lowercased.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
