package research

import (
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// platformCategory pairs a platform type with the keywords that indicate it.
// Slice order is the tie-break order: when two categories have equal keyword
// counts, the one declared earlier wins.
type platformCategory struct {
	Type     model.PlatformType
	Keywords []string
}

// platformCategories is the fixed classification taxonomy, version 2025.1.
var platformCategories = []platformCategory{
	{model.PlatformNoCode, []string{"no-code", "no code", "low-code", "low code", "without code", "visual development", "drag and drop", "app builder"}},
	{model.PlatformCRM, []string{"crm", "customer relationship", "sales pipeline", "lead management", "contact management", "deal tracking"}},
	{model.PlatformProjectManagement, []string{"project management", "task management", "kanban", "sprint planning", "roadmap", "team collaboration"}},
	{model.PlatformEcommerce, []string{"ecommerce", "e-commerce", "online store", "storefront", "shopping cart", "checkout", "sell online"}},
	{model.PlatformAutomation, []string{"automation", "automate", "workflow", "integrations", "connect your apps"}},
	{model.PlatformAnalytics, []string{"analytics", "dashboards", "business intelligence", "data visualization", "metrics", "product insights"}},
	{model.PlatformCommunication, []string{"messaging", "team chat", "video calls", "communication platform", "email marketing", "customer messaging"}},
}

// classifyPlatform counts case-insensitive keyword occurrences per category
// over the combined page text and returns the winning category with its
// occurrence count as confidence. All-zero counts classify as unknown.
func classifyPlatform(text string) model.Platform {
	lower := strings.ToLower(text)

	best := model.Platform{Type: model.PlatformUnknown}
	for _, cat := range platformCategories {
		count := 0
		for _, kw := range cat.Keywords {
			count += strings.Count(lower, kw)
		}
		// Strictly greater: ties keep the earlier category.
		if count > best.Confidence {
			best = model.Platform{Type: cat.Type, Confidence: count}
		}
	}
	return best
}

// titleKeyword maps a lowercase title keyword to its canonical title and
// priority rank. Scan order matters: "founder" must not shadow "co-founder"
// handling, and "ceo" outranks everything.
type titleKeyword struct {
	Keyword   string
	Canonical string
	Rank      int
}

// titleKeywords is the seniority taxonomy used for both title inference and
// priority ranking. Lower rank means more senior.
var titleKeywords = []titleKeyword{
	{"ceo", "CEO", 1},
	{"chief executive", "CEO", 1},
	{"founder", "Founder", 2},
	{"cto", "CTO", 3},
	{"chief technology", "CTO", 3},
	{"cpo", "CPO", 4},
	{"chief product", "CPO", 4},
	{"vp", "VP", 5},
	{"vice president", "VP", 5},
	{"director", "Director", 6},
	{"head of", "Head", 7},
	{"head", "Head", 7},
	{"manager", "Manager", 8},
}

const unknownTitleRank = 9

// titleRank returns the priority rank for a job title (1 = most senior,
// 9 = unknown). Matching is a case-insensitive substring scan in table order.
func titleRank(title string) int {
	lower := strings.ToLower(title)
	for _, tk := range titleKeywords {
		if strings.Contains(lower, tk.Keyword) {
			return tk.Rank
		}
	}
	return unknownTitleRank
}

// inferTitle scans free text for a seniority keyword and returns the
// canonical title, or "" when nothing matches.
func inferTitle(text string) string {
	lower := strings.ToLower(text)
	for _, tk := range titleKeywords {
		if strings.Contains(lower, tk.Keyword) {
			return tk.Canonical
		}
	}
	return ""
}
