package research

import (
	"regexp"
	"sort"
	"time"

	"github.com/sells-group/prospect-cli/internal/model"
)

// emailFormatRe is the standard local@domain.tld syntax check.
var emailFormatRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// personalEmailDomains are consumer providers that carry medium deliverability
// risk for B2B outreach.
var personalEmailDomains = map[string]bool{
	"gmail.com":   true,
	"outlook.com": true,
	"hotmail.com": true,
	"yahoo.com":   true,
}

// Contact quality rubric, version 2025.1. Point caps per dimension:
// title 40, email 25, source 20, linkedin 10, recency 5 (total 100).
const (
	maxQualityScore = 100

	linkedInPoints = 10

	recommendThresholdPct = 60
)

// titleQualityPoints maps a seniority rank to title points.
func titleQualityPoints(rank int) int {
	switch {
	case rank <= 2:
		return 40
	case rank <= 4:
		return 35
	case rank <= 5:
		return 25
	case rank <= 6:
		return 15
	default:
		return 5
	}
}

// emailQualityPoints scores email presence and verification.
func emailQualityPoints(c model.Contact) int {
	switch {
	case c.Email == "":
		return 0
	case c.Verified:
		return 25
	default:
		return 15
	}
}

// sourceQualityPoints scores extraction source reliability.
func sourceQualityPoints(source model.ContactSource) int {
	switch source {
	case model.SourceTeamPage:
		return 20
	case model.SourceContactPage:
		return 15
	case model.SourceTextExtraction:
		return 10
	default:
		return 5
	}
}

// recencyQualityPoints scores extraction freshness.
func recencyQualityPoints(extractedAt, now time.Time) int {
	age := now.Sub(extractedAt)
	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 7*24*time.Hour:
		return 3
	case age <= 30*24*time.Hour:
		return 1
	default:
		return 0
	}
}

// ValidateEmail checks syntax and estimates deliverability risk against the
// company's own domain.
func ValidateEmail(email, companyDomain string) model.EmailValidation {
	if email == "" {
		return model.EmailValidation{IsValid: false, Risk: model.RiskHigh, Reason: "no email address"}
	}
	if !emailFormatRe.MatchString(email) {
		return model.EmailValidation{IsValid: false, Risk: model.RiskHigh, Reason: "invalid email format"}
	}

	domain := model.EmailDomain(email)
	switch {
	case companyDomain != "" && domain == companyDomain:
		return model.EmailValidation{IsValid: true, Risk: model.RiskLow, Reason: "matches company domain"}
	case personalEmailDomains[domain]:
		return model.EmailValidation{IsValid: true, Risk: model.RiskMedium, Reason: "personal email provider"}
	default:
		return model.EmailValidation{IsValid: true, Risk: model.RiskLow, Reason: "custom business domain"}
	}
}

// ScoreAndVerifyContacts computes quality scores and email validation for
// each contact and re-sorts the list descending by quality. Placeholder
// contacts keep their sentinel scores and are never recommended.
func ScoreAndVerifyContacts(contacts []model.Contact, companyWebsite string) []model.Contact {
	companyDomain := model.DomainOf(companyWebsite)
	now := time.Now().UTC()

	scored := make([]model.Contact, len(contacts))
	for i, c := range contacts {
		scored[i] = scoreContact(c, companyDomain, now)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].QualityScore > scored[j].QualityScore
	})

	return scored
}

func scoreContact(c model.Contact, companyDomain string, now time.Time) model.Contact {
	c.EmailValidation = ValidateEmail(c.Email, companyDomain)

	if c.IsPlaceholder() {
		// Sentinel score stays as synthesized; a stub is never outreach-ready.
		c.RecommendedForOutreach = false
		return c
	}

	breakdown := model.QualityBreakdown{
		Title:   titleQualityPoints(titleRank(c.Title)),
		Email:   emailQualityPoints(c),
		Source:  sourceQualityPoints(c.Source),
		Recency: recencyQualityPoints(c.ExtractedAt, now),
	}
	if c.LinkedIn != "" {
		breakdown.LinkedIn = linkedInPoints
	}

	c.QualityBreakdown = breakdown
	c.QualityScore = breakdown.Title + breakdown.Email + breakdown.Source + breakdown.LinkedIn + breakdown.Recency

	pct := c.QualityScore * 100 / maxQualityScore
	c.RecommendedForOutreach = pct >= recommendThresholdPct && c.EmailValidation.IsValid

	return c
}
