package research

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

// teamPaths are probed in order; probing stops at the first path that yields
// any contacts, so earlier paths are preferred.
var teamPaths = []string{
	"/team",
	"/about",
	"/leadership",
	"/about-us",
	"/our-team",
	"/founders",
	"/management",
	"/executive-team",
	"/people",
	"/company/team",
	"/company/leadership",
}

// contactPaths are probed for general mailto links.
var contactPaths = []string{"/contact", "/contact-us", "/contacts"}

// memberSelector matches markup elements that typically wrap one person.
const memberSelector = `[class*="team-member"], [class*="team_member"], [class*="member"], [class*="person"], [class*="founder"], [class*="leadership"], [class*="profile-card"], [class*="staff"], [class*="employee"]`

// nameSelector and titleSelector are the structured cascades tried before
// falling back to free-text heuristics.
const (
	nameSelector  = `h1, h2, h3, h4, .name, [class*="name"]`
	titleSelector = `.title, .role, .position, [class*="title"], [class*="role"], [class*="position"]`
)

// genericEmailPrefixes are skipped when harvesting contact-page mailtos.
var genericEmailPrefixes = []string{"info@", "hello@", "contact@", "support@", "sales@"}

var (
	emailInTextRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	nameCharsRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z .'\-]+$`)

	// namedTitleRe extracts "Jane Doe, CEO" style mentions from plain text.
	namedTitleRe = regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)+)\s*[,\-–—:]\s*(CEO|Chief Executive Officer|Co-Founder|Co-founder|Founder|CTO|Chief Technology Officer|CPO|Chief Product Officer|VP[A-Za-z ]*)`)
)

// navWords are strings that look like names to the selector cascade but are
// navigation or section labels.
var navWords = map[string]bool{
	"home": true, "about": true, "about us": true, "contact": true,
	"contact us": true, "team": true, "our team": true, "meet the team": true,
	"leadership": true, "careers": true, "menu": true, "login": true,
	"log in": true, "sign up": true, "blog": true, "news": true,
	"services": true, "products": true, "pricing": true,
}

var titleCaser = cases.Title(language.English)

// Extractor probes well-known team and contact pages for person records.
type Extractor struct {
	client  *scrape.Client
	timeout time.Duration
}

// NewExtractor creates an Extractor with the given per-page fetch timeout.
func NewExtractor(client *scrape.Client, timeout time.Duration) *Extractor {
	return &Extractor{client: client, timeout: timeout}
}

// Extract collects up to 5 contacts for the company, priority-ordered by
// title seniority. When nothing is extractable it returns two manual-research
// placeholders; when the website itself is unusable it returns a single
// research-failed placeholder.
func (e *Extractor) Extract(ctx context.Context, companyName, websiteURL string) []model.Contact {
	now := time.Now().UTC()

	if websiteURL == "" {
		return placeholderContacts(now)
	}

	base, err := url.Parse(websiteURL)
	if err != nil || base.Host == "" {
		zap.L().Warn("contacts: unusable website url",
			zap.String("company", companyName),
			zap.String("website", websiteURL),
		)
		return []model.Contact{failedPlaceholder(now)}
	}
	domain := model.DomainOf(websiteURL)

	var contacts []model.Contact
	for _, p := range teamPaths {
		page := e.fetchPath(ctx, base, p)
		if page == nil {
			continue
		}

		found := extractStructured(page.Doc, domain, now)
		if len(found) == 0 {
			found = extractFromText(page.Doc, domain, now)
		}
		if len(found) > 0 {
			zap.L().Info("contacts: extracted from team page",
				zap.String("company", companyName),
				zap.String("path", p),
				zap.Int("count", len(found)),
			)
			contacts = found
			break
		}
	}

	for _, p := range contactPaths {
		page := e.fetchPath(ctx, base, p)
		if page == nil {
			continue
		}
		found := extractMailtos(page.Doc, now)
		if len(found) > 0 {
			contacts = append(contacts, found...)
			break
		}
	}

	contacts = dedupeContacts(contacts)
	sort.SliceStable(contacts, func(i, j int) bool {
		return titleRank(contacts[i].Title) < titleRank(contacts[j].Title)
	})
	if len(contacts) > maxContacts {
		contacts = contacts[:maxContacts]
	}

	if len(contacts) == 0 {
		zap.L().Warn("contacts: nothing extracted, synthesizing placeholders",
			zap.String("company", companyName),
		)
		return placeholderContacts(now)
	}

	return contacts
}

// maxContacts caps the contact list per company.
const maxContacts = 5

// fetchPath fetches base+path with the extractor timeout. Failures are soft.
func (e *Extractor) fetchPath(ctx context.Context, base *url.URL, path string) *scrape.Page {
	target := base.Scheme + "://" + base.Host + path
	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := e.client.Fetch(fetchCtx, target)
	if err != nil {
		zap.L().Debug("contacts: path probe failed",
			zap.String("url", target),
			zap.Error(err),
		)
		return nil
	}
	return page
}

// extractStructured runs the member selectors over the document and builds a
// contact per matching element.
func extractStructured(doc *goquery.Document, domain string, now time.Time) []model.Contact {
	var contacts []model.Contact

	doc.Find(memberSelector).Each(func(_ int, s *goquery.Selection) {
		contact, ok := contactFromElement(s, domain, now)
		if ok {
			contacts = append(contacts, contact)
		}
	})

	return dedupeContacts(contacts)
}

// contactFromElement resolves name, title, email, and profile link for one
// person element. Returns false when no plausible name is found.
func contactFromElement(s *goquery.Selection, domain string, now time.Time) (model.Contact, bool) {
	name := findName(s)
	if name == "" {
		return model.Contact{}, false
	}

	title := findTitle(s, name)

	contact := model.Contact{
		Name:        name,
		Title:       title,
		Source:      model.SourceTeamPage,
		Provenance:  model.ProvenanceScraped,
		Priority:    priorityForRank(titleRank(title)),
		ExtractedAt: now,
	}

	if href, ok := s.Find(`a[href*="linkedin.com"]`).First().Attr("href"); ok {
		contact.LinkedIn = href
	}

	if href, ok := s.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		email := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexAny(email, "?&"); i >= 0 {
			email = email[:i]
		}
		contact.Email = strings.ToLower(strings.TrimSpace(email))
		contact.Verified = contact.Email != ""
	}
	if contact.Email == "" {
		if m := emailInTextRe.FindString(s.Text()); m != "" {
			contact.Email = strings.ToLower(m)
		}
	}
	if contact.Email == "" && domain != "" {
		if guessed := synthesizeEmail(name, domain); guessed != "" {
			// Speculative address, never marked verified.
			contact.Email = guessed
			contact.Provenance = model.ProvenanceSynthesized
		}
	}

	return contact, true
}

// findName walks the name selector cascade, then falls back to the first
// text line that passes the person-name filter.
func findName(s *goquery.Selection) string {
	name := ""
	s.Find(nameSelector).EachWithBreak(func(_ int, cand *goquery.Selection) bool {
		text := strings.TrimSpace(cand.Text())
		if looksLikePersonName(text) {
			name = text
			return false
		}
		return true
	})
	if name != "" {
		return name
	}

	for _, line := range strings.Split(s.Text(), "\n") {
		line = strings.TrimSpace(line)
		if looksLikePersonName(line) {
			return line
		}
	}
	return ""
}

// findTitle walks the title selector cascade, then infers from keywords in
// the element text.
func findTitle(s *goquery.Selection, name string) string {
	title := ""
	s.Find(titleSelector).EachWithBreak(func(_ int, cand *goquery.Selection) bool {
		text := strings.TrimSpace(cand.Text())
		if text != "" && text != name && len(text) <= 60 {
			title = text
			return false
		}
		return true
	})
	if title != "" {
		return title
	}
	return inferTitle(s.Text())
}

// looksLikePersonName filters out navigation labels, emails, and strings that
// are too short, too long, or contain non-name characters. Requires at least
// a first and last name.
func looksLikePersonName(s string) bool {
	if len(s) < 4 || len(s) > 40 {
		return false
	}
	if strings.Contains(s, "@") {
		return false
	}
	if navWords[strings.ToLower(s)] {
		return false
	}
	if !nameCharsRe.MatchString(s) {
		return false
	}
	return len(strings.Fields(s)) >= 2
}

// synthesizeEmail guesses firstname.lastname@domain. Returns "" when the name
// does not split into at least two parts.
func synthesizeEmail(name, domain string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) < 2 {
		return ""
	}
	first := strings.Trim(parts[0], ".'-")
	last := strings.Trim(parts[len(parts)-1], ".'-")
	if first == "" || last == "" {
		return ""
	}
	return first + "." + last + "@" + domain
}

// extractFromText is the fallback over unstructured page text, matching
// "Jane Doe, CEO" style mentions.
func extractFromText(doc *goquery.Document, domain string, now time.Time) []model.Contact {
	text := doc.Find("body").Text()
	matches := namedTitleRe.FindAllStringSubmatch(text, -1)

	var contacts []model.Contact
	for _, m := range matches {
		name, title := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if !looksLikePersonName(name) {
			continue
		}
		contact := model.Contact{
			Name:        name,
			Title:       title,
			Source:      model.SourceTextExtraction,
			Provenance:  model.ProvenanceScraped,
			Priority:    priorityForRank(titleRank(title)),
			ExtractedAt: now,
		}
		if domain != "" {
			if guessed := synthesizeEmail(name, domain); guessed != "" {
				contact.Email = guessed
				contact.Provenance = model.ProvenanceSynthesized
			}
		}
		contacts = append(contacts, contact)
	}

	return dedupeContacts(contacts)
}

// extractMailtos harvests person-looking mailto links from a contact page,
// skipping generic org addresses.
func extractMailtos(doc *goquery.Document, now time.Time) []model.Contact {
	var contacts []model.Contact

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		email := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexAny(email, "?&"); i >= 0 {
			email = email[:i]
		}
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || isGenericEmail(email) {
			return
		}

		contacts = append(contacts, model.Contact{
			Name:        nameFromEmail(email),
			Email:       email,
			Source:      model.SourceContactPage,
			Provenance:  model.ProvenanceScraped,
			Priority:    model.PriorityMedium,
			Verified:    true,
			ExtractedAt: now,
		})
	})

	return contacts
}

// isGenericEmail reports addresses like info@ or support@ that are not people.
func isGenericEmail(email string) bool {
	for _, prefix := range genericEmailPrefixes {
		if strings.HasPrefix(email, prefix) {
			return true
		}
	}
	return false
}

// nameFromEmail derives a display name from the address local part,
// e.g. "jane.doe" → "Jane Doe".
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return titleCaser.String(local)
}

// priorityForRank maps a title seniority rank to an outreach priority band.
func priorityForRank(rank int) model.Priority {
	switch {
	case rank <= 2:
		return model.PriorityCritical
	case rank <= 5:
		return model.PriorityHigh
	case rank <= 8:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// dedupeContacts removes duplicates by lowercased (name, title), keeping the
// first occurrence.
func dedupeContacts(contacts []model.Contact) []model.Contact {
	seen := make(map[string]bool, len(contacts))
	out := contacts[:0]
	for _, c := range contacts {
		key := strings.ToLower(c.Name) + "|" + strings.ToLower(c.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Placeholder quality scores are sentinels, not measured values; they must
// never be folded into aggregate statistics.
const (
	placeholderCEOScore = 40
	placeholderCTOScore = 35
)

// placeholderContacts synthesizes the two manual-research stubs used when
// extraction finds nothing.
func placeholderContacts(now time.Time) []model.Contact {
	return []model.Contact{
		{
			Name:         "Research needed",
			Title:        "CEO/Founder",
			Source:       model.SourceResearchNeeded,
			Provenance:   model.ProvenancePlaceholder,
			Priority:     model.PriorityCritical,
			QualityScore: placeholderCEOScore,
			Note:         "No contacts found on website; manual research required",
			ExtractedAt:  now,
		},
		{
			Name:         "Research needed",
			Title:        "CTO/VP Engineering",
			Source:       model.SourceResearchNeeded,
			Provenance:   model.ProvenancePlaceholder,
			Priority:     model.PriorityHigh,
			QualityScore: placeholderCTOScore,
			Note:         "No contacts found on website; manual research required",
			ExtractedAt:  now,
		},
	}
}

// failedPlaceholder is returned when the extraction process itself failed.
func failedPlaceholder(now time.Time) model.Contact {
	return model.Contact{
		Name:         "Research needed",
		Title:        "CEO/Founder",
		Source:       model.SourceResearchFailed,
		Provenance:   model.ProvenancePlaceholder,
		Priority:     model.PriorityCritical,
		QualityScore: placeholderCEOScore,
		Note:         "Contact extraction failed; manual research required",
		ExtractedAt:  now,
	}
}
