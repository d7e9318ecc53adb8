package research

import (
	"fmt"

	"github.com/sells-group/prospect-cli/internal/model"
)

// platformHooks are outreach email openers per platform category.
var platformHooks = map[model.PlatformType]string{
	model.PlatformNoCode: "Mention how their no-code platform users could benefit from deeper integrations",
	model.PlatformCRM:    "Reference their CRM focus and the cost of leads slipping through manual follow-up",
}

// GenerateInsights derives qualitative strengths, concerns, recommendations,
// and email hooks from the analysis and scoring breakdown. Pure function.
func GenerateInsights(a model.Analysis, s model.ScoringResult) model.Insights {
	var ins model.Insights

	if s.Breakdown.PlatformType >= 20 {
		ins.Strengths = append(ins.Strengths,
			fmt.Sprintf("Strong platform category fit (%s)", a.Platform.Type))
	}

	if a.Indicators.HasCustomers {
		strength := "Established customer base"
		if a.Indicators.CustomerMention != "" {
			strength = fmt.Sprintf("Established customer base (%s)", a.Indicators.CustomerMention)
		}
		ins.Strengths = append(ins.Strengths, strength)
		ins.EmailHooks = append(ins.EmailHooks,
			"Congratulate them on their customer growth and tie it to scaling outreach")
	}

	if a.Content.HasAPI {
		ins.Strengths = append(ins.Strengths, "Public API signals technical openness to integration")
	}

	if s.Breakdown.TechnicalFit < 10 {
		ins.Concerns = append(ins.Concerns, "Weak technical fit signals; integration may be a harder sell")
	}
	if !a.Indicators.HasFunding {
		ins.Concerns = append(ins.Concerns, "No funding signals found; budget may be constrained")
	}

	switch {
	case s.TotalScore >= model.HotThreshold:
		ins.Recommendations = append(ins.Recommendations, "Immediate outreach recommended: top-tier fit")
	case s.TotalScore >= model.WarmThreshold:
		ins.Recommendations = append(ins.Recommendations, "Promising fit: research further before outreach")
	default:
		ins.Recommendations = append(ins.Recommendations, "Add to nurture track; revisit in a quarter")
	}

	if hook, ok := platformHooks[a.Platform.Type]; ok {
		ins.EmailHooks = append(ins.EmailHooks, hook)
	}

	return ins
}
