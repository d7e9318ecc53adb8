package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

const richHomepage = `<html>
<head>
	<title>Acmeflow - build apps without code</title>
	<meta name="description" content="The no-code platform for visual development">
	<meta name="keywords" content="no-code, app builder">
	<script src="/static/react.production.min.js"></script>
	<script src="https://www.googletagmanager.com/gtm.js"></script>
</head>
<body>
	<nav>
		<a href="/pricing">Pricing</a>
		<a href="/careers">Careers</a>
		<a href="/press">Press</a>
		<a href="/developers">Developers</a>
	</nav>
	<h1>Build apps without code</h1>
	<p>Trusted by 12,000+ customers. We raised our Series B last year and we're hiring.</p>
	<p>Read our case studies. Plans start at $29 per month with a subscription.</p>
	<p>Need more? Contact sales for enterprise pricing. Developer API available.</p>
</body>
</html>`

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(scrape.NewClient("test-agent"), 5*time.Second)
}

func TestAnalyze_RichHomepage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(richHomepage))
	}))
	defer srv.Close()

	a := newTestAnalyzer().Analyze(context.Background(), srv.URL)
	require.True(t, a.Analyzed)

	assert.Equal(t, "Acmeflow - build apps without code", a.Title)
	assert.Equal(t, "The no-code platform for visual development", a.Description)
	assert.Equal(t, "no-code, app builder", a.Keywords)

	assert.Equal(t, model.PlatformNoCode, a.Platform.Type)
	assert.Greater(t, a.Platform.Confidence, 0)

	assert.True(t, a.Indicators.HasCustomers)
	assert.Equal(t, "12,000+ customers", a.Indicators.CustomerMention)
	assert.True(t, a.Indicators.HasFunding)
	assert.True(t, a.Indicators.HasCareers)
	assert.True(t, a.Indicators.HasPress)
	assert.True(t, a.Indicators.HasCaseStudies)
	assert.ElementsMatch(t, []string{"customer-base", "funded", "hiring", "press-coverage", "case-studies"}, a.Indicators.Growth)

	assert.Contains(t, a.TechStack.Frameworks, "React")
	assert.Contains(t, a.TechStack.Analytics, "Google Tag Manager")
	assert.Equal(t, "nginx", a.TechStack.Server)

	assert.True(t, a.Pricing.HasPricingPage)
	assert.Equal(t, model.PricingSubscription, a.Pricing.Model)
	assert.True(t, a.Pricing.HasEnterprise)

	assert.True(t, a.Content.HasAPI)
	assert.True(t, a.Content.HasDevelopers)
	assert.True(t, a.Content.HasEnterprise)
}

func TestAnalyze_EmptyURL(t *testing.T) {
	a := newTestAnalyzer().Analyze(context.Background(), "")
	assert.False(t, a.Analyzed)
	assert.Equal(t, model.Analysis{}, a)
}

func TestAnalyze_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	a := newTestAnalyzer().Analyze(context.Background(), srv.URL)
	assert.False(t, a.Analyzed)
	assert.Equal(t, model.Analysis{}, a)
}

func TestAnalyze_SparsePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Quiet Co</title></head><body><p>Welcome.</p></body></html>`))
	}))
	defer srv.Close()

	a := newTestAnalyzer().Analyze(context.Background(), srv.URL)
	require.True(t, a.Analyzed)

	assert.Equal(t, "Quiet Co", a.Title)
	assert.Equal(t, model.PlatformUnknown, a.Platform.Type)
	assert.False(t, a.Indicators.HasCustomers)
	assert.Empty(t, a.Indicators.Growth)
	assert.False(t, a.Pricing.HasPricingPage)
	assert.Equal(t, model.PricingUnknown, a.Pricing.Model)
	assert.False(t, a.Content.HasAPI)
}

func TestAnalyze_FundingRoundPhrasings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"hyphenated round", "We closed our Series-A in March.", true},
		{"sentence-final", "Backed by top investors since our first Series.", true},
		{"raised keyword", "We raised $5M to grow the team.", true},
		{"miniseries is not funding", "Watch our new documentary miniseries.", false},
		{"no funding language", "We sell artisanal soap.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html><body><p>" + tt.body + "</p></body></html>"))
			}))
			defer srv.Close()

			a := newTestAnalyzer().Analyze(context.Background(), srv.URL)
			require.True(t, a.Analyzed)
			assert.Equal(t, tt.want, a.Indicators.HasFunding)
		})
	}
}

func TestAnalyze_APIWordBoundary(t *testing.T) {
	// "therapist" contains "api" but must not count as an API signal.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Find a therapist near you.</p></body></html>`))
	}))
	defer srv.Close()

	a := newTestAnalyzer().Analyze(context.Background(), srv.URL)
	require.True(t, a.Analyzed)
	assert.False(t, a.Content.HasAPI)
}
