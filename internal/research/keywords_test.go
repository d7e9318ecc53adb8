package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestClassifyPlatform(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantType   model.PlatformType
		wantConfid int
	}{
		{
			"no-code keywords win",
			"Build apps without code using our no-code visual development platform",
			model.PlatformNoCode,
			3,
		},
		{
			"crm keywords",
			"The CRM for modern sales teams: lead management and deal tracking in one place",
			model.PlatformCRM,
			3,
		},
		{
			"ecommerce",
			"Launch your online store with a beautiful storefront and fast checkout",
			model.PlatformEcommerce,
			3,
		},
		{
			"case insensitive",
			"AUTOMATION for your WORKFLOW",
			model.PlatformAutomation,
			2,
		},
		{
			"no match classifies unknown",
			"artisanal bakery serving sourdough since 1982",
			model.PlatformUnknown,
			0,
		},
		{
			"empty text",
			"",
			model.PlatformUnknown,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyPlatform(tt.text)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantConfid, got.Confidence)
		})
	}
}

func TestClassifyPlatform_TieKeepsEarlierCategory(t *testing.T) {
	// One keyword hit each for no-code and crm; no-code is declared first.
	got := classifyPlatform("a no-code crm")
	assert.Equal(t, model.PlatformNoCode, got.Type)
	assert.Equal(t, 1, got.Confidence)
}

func TestTitleRank(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"CEO", 1},
		{"Chief Executive Officer", 1},
		{"Co-Founder & CEO", 1}, // ceo scans before founder
		{"Founder", 2},
		{"CTO", 3},
		{"Chief Technology Officer", 3},
		{"Chief Product Officer", 4},
		{"VP of Sales", 5},
		{"Vice President, Engineering", 5},
		{"Director of Marketing", 6},
		{"Head of Growth", 7},
		{"Engineering Manager", 8},
		{"Software Engineer", 9},
		{"President", 9},               // only "vice president" is ranked
		{"Chief Marketing Officer", 9}, // untabled C-suite variants stay unranked
		{"", 9},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, titleRank(tt.title))
		})
	}
}

func TestInferTitle(t *testing.T) {
	assert.Equal(t, "CEO", inferTitle("Jane is the CEO and loves skiing"))
	assert.Equal(t, "Founder", inferTitle("founder of the company"))
	assert.Equal(t, "VP", inferTitle("our vp of product"))
	assert.Equal(t, "", inferTitle("enjoys long walks"))
}
