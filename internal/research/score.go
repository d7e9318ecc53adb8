package research

import (
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Factor caps. The total fit score is the sum of already-capped factors, so
// its theoretical maximum is model.MaxFitScore (120).
const (
	capPlatformRecognition = 20
	capPlatformType        = 30
	capBusinessIndicators  = 25
	capTechnicalFit        = 20
	capPricingModel        = 15
	capGrowthIndicators    = 10

	pointsPerGrowthSignal = 3

	unrecognizedPlatformPoints = 5
)

// RecognitionEntry awards points when a well-known platform name appears in
// the page title or website URL. First match wins.
type RecognitionEntry struct {
	Name   string `yaml:"name"`
	Points int    `yaml:"points"`
}

// Rubric is the named, versioned fit-scoring table set. Scoring changes are
// made by editing or overriding the rubric, not the scorer.
type Rubric struct {
	Version             string                     `yaml:"version"`
	PlatformRecognition []RecognitionEntry         `yaml:"platform_recognition"`
	PlatformTypePoints  map[model.PlatformType]int `yaml:"platform_type_points"`
}

// DefaultRubric returns the built-in scoring tables.
func DefaultRubric() Rubric {
	return Rubric{
		Version: "2025.1",
		PlatformRecognition: []RecognitionEntry{
			{Name: "bubble", Points: 20},
			{Name: "webflow", Points: 20},
			{Name: "airtable", Points: 18},
			{Name: "zapier", Points: 18},
			{Name: "notion", Points: 15},
			{Name: "retool", Points: 15},
			{Name: "glide", Points: 12},
			{Name: "adalo", Points: 12},
			{Name: "softr", Points: 10},
			{Name: "thunkable", Points: 10},
		},
		PlatformTypePoints: map[model.PlatformType]int{
			model.PlatformNoCode:            30,
			model.PlatformAutomation:        25,
			model.PlatformCRM:               25,
			model.PlatformAnalytics:         20,
			model.PlatformProjectManagement: 20,
			model.PlatformEcommerce:         18,
			model.PlatformCommunication:     15,
		},
	}
}

// LoadRubric reads a YAML rubric file over the defaults. Missing sections
// keep their default tables.
func LoadRubric(path string) (Rubric, error) {
	rubric := DefaultRubric()

	data, err := os.ReadFile(path)
	if err != nil {
		return rubric, eris.Wrap(err, "rubric: read file")
	}

	var override Rubric
	if err := yaml.Unmarshal(data, &override); err != nil {
		return rubric, eris.Wrap(err, "rubric: parse yaml")
	}

	if override.Version != "" {
		rubric.Version = override.Version
	}
	if len(override.PlatformRecognition) > 0 {
		rubric.PlatformRecognition = override.PlatformRecognition
	}
	if len(override.PlatformTypePoints) > 0 {
		rubric.PlatformTypePoints = override.PlatformTypePoints
	}

	return rubric, nil
}

// Score computes the 0-120 weighted fit score from an analysis. Absent
// signals simply contribute zero, so an empty analysis scores 0.
func (r Rubric) Score(a model.Analysis, website string) model.ScoringResult {
	breakdown := model.ScoreBreakdown{
		PlatformRecognition: r.scoreRecognition(a.Title, website),
		PlatformType:        r.scorePlatformType(a),
		BusinessIndicators:  scoreBusinessIndicators(a.Indicators),
		TechnicalFit:        scoreTechnicalFit(a.Content),
		PricingModel:        scorePricing(a.Pricing),
		GrowthIndicators:    scoreGrowth(a.Indicators.Growth),
	}

	total := breakdown.PlatformRecognition +
		breakdown.PlatformType +
		breakdown.BusinessIndicators +
		breakdown.TechnicalFit +
		breakdown.PricingModel +
		breakdown.GrowthIndicators

	return model.ScoringResult{
		TotalScore:  total,
		Breakdown:   breakdown,
		MaxPossible: model.MaxFitScore,
		Percentage:  int(math.Round(float64(total) / model.MaxFitScore * 100)),
	}
}

// scoreRecognition checks title and website against the recognition table;
// first match wins.
func (r Rubric) scoreRecognition(title, website string) int {
	haystack := strings.ToLower(title + " " + website)
	for _, entry := range r.PlatformRecognition {
		if strings.Contains(haystack, entry.Name) {
			return capAt(entry.Points, capPlatformRecognition)
		}
	}
	return 0
}

// scorePlatformType awards the per-category points, a small default for
// recognized-but-untabled types, and zero when no classification exists.
func (r Rubric) scorePlatformType(a model.Analysis) int {
	if !a.Analyzed || a.Platform.Type == "" {
		return 0
	}
	if pts, ok := r.PlatformTypePoints[a.Platform.Type]; ok {
		return capAt(pts, capPlatformType)
	}
	return unrecognizedPlatformPoints
}

func scoreBusinessIndicators(ind model.BusinessIndicators) int {
	pts := 0
	if ind.HasCustomers {
		pts += 10
	}
	if ind.HasFunding {
		pts += 15
	}
	if ind.HasCareers {
		pts += 10
	}
	if ind.HasCaseStudies {
		pts += 5
	}
	return capAt(pts, capBusinessIndicators)
}

func scoreTechnicalFit(flags model.ContentFlags) int {
	pts := 0
	if flags.HasAPI {
		pts += 15
	}
	if flags.HasDevelopers {
		pts += 10
	}
	if flags.HasEnterprise {
		pts += 5
	}
	return capAt(pts, capTechnicalFit)
}

func scorePricing(pricing model.PricingInfo) int {
	pts := 0
	if pricing.HasPricingPage {
		pts += 10
	}
	if pricing.Model == model.PricingSubscription || pricing.Model == model.PricingPerSeat {
		pts += 5
	}
	if pricing.HasEnterprise {
		pts += 10
	}
	return capAt(pts, capPricingModel)
}

func scoreGrowth(growth []string) int {
	return capAt(pointsPerGrowthSignal*len(growth), capGrowthIndicators)
}

func capAt(pts, limit int) int {
	if pts > limit {
		return limit
	}
	return pts
}
