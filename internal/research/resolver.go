package research

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/scrape"
)

// knownCompany maps a company name fragment to its website. Matching is a
// case-insensitive substring check against the input name, first match wins,
// so entries are ordered longest-fragment-first where fragments overlap.
type knownCompany struct {
	Fragment string
	Website  string
}

// knownCompanies is the static alias table for well-known platforms that a
// domain guess would miss or misresolve.
var knownCompanies = []knownCompany{
	{"monday.com", "https://monday.com"},
	{"monday", "https://monday.com"},
	{"bubble", "https://bubble.io"},
	{"webflow", "https://webflow.com"},
	{"airtable", "https://airtable.com"},
	{"zapier", "https://zapier.com"},
	{"notion", "https://notion.so"},
	{"hubspot", "https://hubspot.com"},
	{"salesforce", "https://salesforce.com"},
	{"pipedrive", "https://pipedrive.com"},
	{"asana", "https://asana.com"},
	{"trello", "https://trello.com"},
	{"clickup", "https://clickup.com"},
	{"shopify", "https://shopify.com"},
	{"bigcommerce", "https://bigcommerce.com"},
	{"squarespace", "https://squarespace.com"},
	{"wix", "https://wix.com"},
	{"retool", "https://retool.com"},
	{"glide", "https://glideapps.com"},
	{"adalo", "https://adalo.com"},
	{"softr", "https://softr.io"},
}

// Resolver maps a company name to a candidate website URL.
type Resolver struct {
	client  *scrape.Client
	timeout time.Duration
}

// NewResolver creates a Resolver probing with the given per-probe timeout.
func NewResolver(client *scrape.Client, timeout time.Duration) *Resolver {
	return &Resolver{client: client, timeout: timeout}
}

// Resolve returns a website URL for the company name, or "" when neither the
// alias table nor domain guessing finds one. Failure is non-fatal; callers
// proceed without a website.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	lower := strings.ToLower(name)
	for _, kc := range knownCompanies {
		if strings.Contains(lower, kc.Fragment) {
			zap.L().Debug("resolver: alias table hit",
				zap.String("company", name),
				zap.String("website", kc.Website),
			)
			return kc.Website
		}
	}

	token := normalizeToken(name)
	if token == "" {
		return ""
	}

	candidates := []string{
		fmt.Sprintf("https://%s.com", token),
		fmt.Sprintf("https://www.%s.com", token),
		fmt.Sprintf("https://%s.io", token),
		fmt.Sprintf("https://www.%s.io", token),
	}

	for _, candidate := range candidates {
		probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
		status, err := r.client.Probe(probeCtx, candidate)
		cancel()
		if err != nil {
			zap.L().Debug("resolver: probe failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}
		if status < 400 {
			zap.L().Info("resolver: domain guess resolved",
				zap.String("company", name),
				zap.String("website", candidate),
				zap.Int("status", status),
			)
			return candidate
		}
	}

	zap.L().Warn("resolver: no website found", zap.String("company", name))
	return ""
}

// normalizeToken lowercases a company name and strips everything that is not
// a letter or digit, producing the domain-guess token.
func normalizeToken(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
