package research

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

// customerMentionRe detects scale claims like "10,000+ customers".
var customerMentionRe = regexp.MustCompile(`(\d[\d,]*)\+?\s*(customers|users|companies|businesses)`)

// apiRe matches "api" as a standalone word so "therapist" does not count.
var apiRe = regexp.MustCompile(`\bapi\b`)

// seriesRe matches funding-round mentions in any phrasing ("Series A",
// "Series-B", "Series.") without catching words like "miniseries".
var seriesRe = regexp.MustCompile(`\bseries\b`)

// frameworkHints maps a script-src fragment to the framework it indicates.
var frameworkHints = []struct{ Fragment, Name string }{
	{"react", "React"},
	{"next", "Next.js"},
	{"vue", "Vue"},
	{"nuxt", "Nuxt"},
	{"angular", "Angular"},
	{"svelte", "Svelte"},
	{"ember", "Ember"},
}

// analyticsHints maps a script-src fragment to an analytics vendor.
var analyticsHints = []struct{ Fragment, Name string }{
	{"googletagmanager", "Google Tag Manager"},
	{"google-analytics", "Google Analytics"},
	{"gtag", "Google Analytics"},
	{"segment", "Segment"},
	{"mixpanel", "Mixpanel"},
	{"hotjar", "Hotjar"},
	{"amplitude", "Amplitude"},
	{"plausible", "Plausible"},
}

// Analyzer fetches a company website and derives platform, business,
// technology, and pricing signals from its markup.
type Analyzer struct {
	client  *scrape.Client
	timeout time.Duration
}

// NewAnalyzer creates an Analyzer with the given page fetch timeout.
func NewAnalyzer(client *scrape.Client, timeout time.Duration) *Analyzer {
	return &Analyzer{client: client, timeout: timeout}
}

// Analyze fetches and analyzes the website. An empty websiteURL or any
// fetch/parse error yields a zero-value Analysis; analysis failure never
// aborts the research pipeline.
func (a *Analyzer) Analyze(ctx context.Context, websiteURL string) model.Analysis {
	if websiteURL == "" {
		return model.Analysis{}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	page, err := a.client.Fetch(fetchCtx, websiteURL)
	if err != nil {
		zap.L().Warn("analyze: fetch failed",
			zap.String("url", websiteURL),
			zap.Error(err),
		)
		return model.Analysis{}
	}

	doc := page.Doc
	analysis := model.Analysis{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: metaContent(doc, "description"),
		Keywords:    metaContent(doc, "keywords"),
		Analyzed:    true,
	}

	body := page.Text()
	combined := strings.ToLower(analysis.Title + " " + analysis.Description + " " + body)

	analysis.Platform = classifyPlatform(combined)
	analysis.Indicators = detectIndicators(doc, body)
	analysis.TechStack = detectTechStack(doc, page.Server)
	analysis.Pricing = detectPricing(doc, body)
	analysis.Content = model.ContentFlags{
		HasAPI:        apiRe.MatchString(body),
		HasDevelopers: strings.Contains(body, "developer") || hasLink(doc, "developers"),
		HasEnterprise: strings.Contains(body, "enterprise"),
	}

	zap.L().Info("analyze: complete",
		zap.String("url", websiteURL),
		zap.String("platform", string(analysis.Platform.Type)),
		zap.Int("confidence", analysis.Platform.Confidence),
		zap.Int("growth_signals", len(analysis.Indicators.Growth)),
	)

	return analysis
}

// detectIndicators derives business/growth signals from links and body text.
// Every detected signal both sets its flag and appends a growth tag.
func detectIndicators(doc *goquery.Document, body string) model.BusinessIndicators {
	var ind model.BusinessIndicators

	if m := customerMentionRe.FindString(body); m != "" {
		ind.HasCustomers = true
		ind.CustomerMention = m
		ind.Growth = append(ind.Growth, "customer-base")
	}

	if strings.Contains(body, "funding") || strings.Contains(body, "raised") || seriesRe.MatchString(body) {
		ind.HasFunding = true
		ind.Growth = append(ind.Growth, "funded")
	}

	if hasLink(doc, "careers") || hasLink(doc, "jobs") ||
		strings.Contains(body, "we're hiring") || strings.Contains(body, "we are hiring") {
		ind.HasCareers = true
		ind.Growth = append(ind.Growth, "hiring")
	}

	if hasLink(doc, "press") || hasLink(doc, "news") {
		ind.HasPress = true
		ind.Growth = append(ind.Growth, "press-coverage")
	}

	if strings.Contains(body, "case study") || strings.Contains(body, "case studies") ||
		strings.Contains(body, "success stories") {
		ind.HasCaseStudies = true
		ind.Growth = append(ind.Growth, "case-studies")
	}

	return ind
}

// detectTechStack inspects script tags and the Server header.
func detectTechStack(doc *goquery.Document, serverHeader string) model.TechStack {
	stack := model.TechStack{Server: serverHeader}

	seen := map[string]bool{}
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.ToLower(src)
		for _, h := range frameworkHints {
			if strings.Contains(src, h.Fragment) && !seen[h.Name] {
				seen[h.Name] = true
				stack.Frameworks = append(stack.Frameworks, h.Name)
			}
		}
		for _, h := range analyticsHints {
			if strings.Contains(src, h.Fragment) && !seen[h.Name] {
				seen[h.Name] = true
				stack.Analytics = append(stack.Analytics, h.Name)
			}
		}
	})

	return stack
}

// detectPricing looks for a pricing page link and pricing-language in the body.
func detectPricing(doc *goquery.Document, body string) model.PricingInfo {
	info := model.PricingInfo{Model: model.PricingUnknown}

	info.HasPricingPage = hasLink(doc, "pricing") || hasLink(doc, "plans")
	info.HasEnterprise = strings.Contains(body, "enterprise pricing") ||
		strings.Contains(body, "contact sales") ||
		strings.Contains(body, "enterprise plan")

	switch {
	case strings.Contains(body, "per seat") || strings.Contains(body, "per user"):
		info.Model = model.PricingPerSeat
	case strings.Contains(body, "subscription") || strings.Contains(body, "per month") ||
		strings.Contains(body, "/mo"):
		info.Model = model.PricingSubscription
	}

	return info
}

// hasLink reports whether any anchor href contains the given fragment.
func hasLink(doc *goquery.Document, fragment string) bool {
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(strings.ToLower(href), fragment) {
			found = true
			return false
		}
		return true
	})
	return found
}

// metaContent returns the content attribute of a named meta tag.
func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}
