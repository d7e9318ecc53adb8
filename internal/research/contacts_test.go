package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

func newTestExtractor() *Extractor {
	return NewExtractor(scrape.NewClient("test-agent"), 5*time.Second)
}

func serveHTML(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_StructuredTeamPage(t *testing.T) {
	srv := serveHTML(t, map[string]string{
		"/team": `<html><body>
			<div class="team-member">
				<h3>Jane Doe</h3>
				<p class="title">CEO</p>
				<a href="https://linkedin.com/in/janedoe">LinkedIn</a>
				<a href="mailto:Jane@acme.com?subject=hi">Email</a>
			</div>
			<div class="team-member">
				<h3>John Smith</h3>
				<p class="title">CTO</p>
			</div>
		</body></html>`,
	})

	contacts := newTestExtractor().Extract(context.Background(), "Acme", srv.URL)
	require.Len(t, contacts, 2)

	jane := contacts[0]
	assert.Equal(t, "Jane Doe", jane.Name)
	assert.Equal(t, "CEO", jane.Title)
	assert.Equal(t, "jane@acme.com", jane.Email) // mailto query params stripped, lowercased
	assert.True(t, jane.Verified)
	assert.Equal(t, "https://linkedin.com/in/janedoe", jane.LinkedIn)
	assert.Equal(t, model.SourceTeamPage, jane.Source)
	assert.Equal(t, model.ProvenanceScraped, jane.Provenance)
	assert.Equal(t, model.PriorityCritical, jane.Priority)

	john := contacts[1]
	assert.Equal(t, "John Smith", john.Name)
	assert.Equal(t, "CTO", john.Title)
	// No email on the page, so one is guessed from the name and domain.
	assert.True(t, strings.HasPrefix(john.Email, "john.smith@"))
	assert.False(t, john.Verified)
	assert.Equal(t, model.ProvenanceSynthesized, john.Provenance)
	assert.Equal(t, model.PriorityHigh, john.Priority)
}

func TestExtract_TextFallback(t *testing.T) {
	srv := serveHTML(t, map[string]string{
		"/about": `<html><body>
			<p>Our company was founded by Jane Doe, CEO and John Smith, CTO.</p>
		</body></html>`,
	})

	contacts := newTestExtractor().Extract(context.Background(), "Acme", srv.URL)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Jane Doe", contacts[0].Name)
	assert.Equal(t, "CEO", contacts[0].Title)
	assert.Equal(t, model.SourceTextExtraction, contacts[0].Source)
	assert.Equal(t, "John Smith", contacts[1].Name)
	assert.Equal(t, "CTO", contacts[1].Title)
}

func TestExtract_ContactPageMailtos(t *testing.T) {
	srv := serveHTML(t, map[string]string{
		"/contact": `<html><body>
			<a href="mailto:info@acme.com">General</a>
			<a href="mailto:jane.doe@acme.com">Jane</a>
		</body></html>`,
	})

	contacts := newTestExtractor().Extract(context.Background(), "Acme", srv.URL)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "Jane Doe", c.Name) // derived from the address local part
	assert.Equal(t, "jane.doe@acme.com", c.Email)
	assert.True(t, c.Verified)
	assert.Equal(t, model.SourceContactPage, c.Source)
}

func TestExtract_CapsAtFiveContacts(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	members := []struct{ name, title string }{
		{"Alice Alpha", "CEO"},
		{"Bob Beta", "CTO"},
		{"Carol Gamma", "VP Sales"},
		{"Dave Delta", "Director of Ops"},
		{"Erin Epsilon", "Engineering Manager"},
		{"Frank Zeta", "Software Engineer"},
		{"Grace Eta", "Designer"},
	}
	for _, m := range members {
		b.WriteString(`<div class="team-member"><h3>` + m.name + `</h3><p class="title">` + m.title + `</p></div>`)
	}
	b.WriteString("</body></html>")

	srv := serveHTML(t, map[string]string{"/team": b.String()})

	contacts := newTestExtractor().Extract(context.Background(), "Acme", srv.URL)
	require.Len(t, contacts, maxContacts)

	// Kept in seniority order, so the most junior titles fall off.
	assert.Equal(t, "Alice Alpha", contacts[0].Name)
	assert.Equal(t, "Bob Beta", contacts[1].Name)
	for i := 1; i < len(contacts); i++ {
		assert.LessOrEqual(t, titleRank(contacts[i-1].Title), titleRank(contacts[i].Title))
	}
}

func TestExtract_NothingFoundReturnsPlaceholders(t *testing.T) {
	srv := serveHTML(t, map[string]string{}) // every path 404s

	contacts := newTestExtractor().Extract(context.Background(), "Ghost Co", srv.URL)
	require.Len(t, contacts, 2)

	assert.Equal(t, model.SourceResearchNeeded, contacts[0].Source)
	assert.Equal(t, "CEO/Founder", contacts[0].Title)
	assert.Equal(t, placeholderCEOScore, contacts[0].QualityScore)
	assert.Equal(t, "CTO/VP Engineering", contacts[1].Title)
	assert.Equal(t, placeholderCTOScore, contacts[1].QualityScore)
	for _, c := range contacts {
		assert.True(t, c.IsPlaceholder())
	}
}

func TestExtract_EmptyWebsiteReturnsPlaceholders(t *testing.T) {
	contacts := newTestExtractor().Extract(context.Background(), "No Site Inc", "")
	require.Len(t, contacts, 2)
	assert.Equal(t, model.SourceResearchNeeded, contacts[0].Source)
}

func TestExtract_UnusableWebsiteReturnsFailedPlaceholder(t *testing.T) {
	contacts := newTestExtractor().Extract(context.Background(), "Broken", "://not-a-url")
	require.Len(t, contacts, 1)
	assert.Equal(t, model.SourceResearchFailed, contacts[0].Source)
	assert.True(t, contacts[0].IsPlaceholder())
}

func TestLooksLikePersonName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Jane Doe", true},
		{"Mary-Jane O'Connor", true},
		{"Jane", false},              // single word
		{"Meet The Team", false},     // navigation label
		{"jane@acme.com", false},     // email
		{"Jane Doe 123", false},      // digits
		{"Ab", false},                // too short
		{strings.Repeat("Na ", 20), false}, // too long
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikePersonName(tt.input))
		})
	}
}

func TestSynthesizeEmail(t *testing.T) {
	assert.Equal(t, "jane.doe@acme.com", synthesizeEmail("Jane Doe", "acme.com"))
	assert.Equal(t, "jane.doe@acme.com", synthesizeEmail("Jane Middle Doe", "acme.com"))
	assert.Equal(t, "", synthesizeEmail("Jane", "acme.com"))
	assert.Equal(t, "", synthesizeEmail("", "acme.com"))
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "Jane Doe", nameFromEmail("jane.doe@acme.com"))
	assert.Equal(t, "Jane Doe", nameFromEmail("jane_doe@acme.com"))
	assert.Equal(t, "Jane", nameFromEmail("jane@acme.com"))
}

func TestIsGenericEmail(t *testing.T) {
	assert.True(t, isGenericEmail("info@acme.com"))
	assert.True(t, isGenericEmail("support@acme.com"))
	assert.False(t, isGenericEmail("jane@acme.com"))
}

func TestDedupeContacts(t *testing.T) {
	contacts := []model.Contact{
		{Name: "Jane Doe", Title: "CEO", Email: "jane@acme.com"},
		{Name: "jane doe", Title: "ceo", Email: "dupe@acme.com"},
		{Name: "Jane Doe", Title: "CTO"},
	}

	deduped := dedupeContacts(contacts)
	require.Len(t, deduped, 2)
	assert.Equal(t, "jane@acme.com", deduped[0].Email) // first occurrence kept
	assert.Equal(t, "CTO", deduped[1].Title)
}

func TestPriorityForRank(t *testing.T) {
	assert.Equal(t, model.PriorityCritical, priorityForRank(1))
	assert.Equal(t, model.PriorityCritical, priorityForRank(2))
	assert.Equal(t, model.PriorityHigh, priorityForRank(3))
	assert.Equal(t, model.PriorityHigh, priorityForRank(5))
	assert.Equal(t, model.PriorityMedium, priorityForRank(8))
	assert.Equal(t, model.PriorityLow, priorityForRank(9))
}
