package research

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/config"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

// Researcher sequences website resolution, content analysis, contact
// extraction, scoring, and insight generation per company, and fans the
// whole pipeline out across batches with throttling.
type Researcher struct {
	resolver  *Resolver
	analyzer  *Analyzer
	extractor *Extractor
	rubric    Rubric
	batchCfg  config.BatchConfig
}

// New builds a Researcher from config. A rubric file path, when configured,
// overrides the built-in scoring tables.
func New(cfg *config.Config, client *scrape.Client) *Researcher {
	rubric := DefaultRubric()
	if cfg.Research.RubricPath != "" {
		loaded, err := LoadRubric(cfg.Research.RubricPath)
		if err != nil {
			zap.L().Warn("research: rubric load failed, using defaults",
				zap.String("path", cfg.Research.RubricPath),
				zap.Error(err),
			)
		} else {
			rubric = loaded
		}
	}

	return &Researcher{
		resolver:  NewResolver(client, time.Duration(cfg.Research.ProbeTimeoutSecs)*time.Second),
		analyzer:  NewAnalyzer(client, time.Duration(cfg.Research.AnalyzeTimeoutSecs)*time.Second),
		extractor: NewExtractor(client, time.Duration(cfg.Research.ContactTimeoutSecs)*time.Second),
		rubric:    rubric,
		batchCfg:  cfg.Batch,
	}
}

// Research runs the full pipeline for one company. Source failures degrade to
// partial data; only an empty company name is fatal.
func (r *Researcher) Research(ctx context.Context, input model.CompanyInput) (*model.ResearchResult, error) {
	if input.Name == "" {
		return nil, eris.New("research: company name is required")
	}

	log := zap.L().With(zap.String("company", input.Name))
	log.Info("research: starting")

	website := input.Website
	if website == "" {
		website = r.resolver.Resolve(ctx, input.Name)
	}

	// Content analysis, contact extraction, and intelligence gathering read
	// independent sources, so they run concurrently and join before scoring.
	var (
		analysis model.Analysis
		contacts []model.Contact
		intel    model.Intelligence
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis = r.analyzer.Analyze(gCtx, website)
		return nil
	})
	g.Go(func() error {
		contacts = r.extractor.Extract(gCtx, input.Name, website)
		return nil
	})
	g.Go(func() error {
		intel = gatherIntelligence(gCtx, input.Name)
		return nil
	})
	_ = g.Wait()

	contacts = ScoreAndVerifyContacts(contacts, website)

	scoring := r.rubric.Score(analysis, website)
	insights := GenerateInsights(analysis, scoring)

	result := &model.ResearchResult{
		ID: uuid.NewString(),
		Company: model.CompanyRecord{
			Name:     input.Name,
			Website:  website,
			Analysis: analysis,
		},
		Contacts:       contacts,
		Intelligence:   intel,
		Scoring:        scoring,
		Insights:       insights,
		Recommendation: model.TierForScore(scoring.TotalScore),
		ResearchedAt:   time.Now().UTC(),
	}

	log.Info("research: complete",
		zap.String("website", website),
		zap.Int("score", scoring.TotalScore),
		zap.String("tier", string(result.Recommendation)),
		zap.Int("contacts", len(contacts)),
	)

	return result, nil
}

// gatherIntelligence is the third-party enrichment stage. No external data
// providers are wired, so it returns an empty record.
func gatherIntelligence(_ context.Context, _ string) model.Intelligence {
	return model.Intelligence{}
}

// BatchOptions throttles batch research.
type BatchOptions struct {
	MaxConcurrent int
	Delay         time.Duration
}

// BatchResearch researches companies in chunks of MaxConcurrent with a fixed
// delay between chunks. One company's failure becomes an error record and
// never aborts the batch. Results are sorted descending by total score with
// error records last.
func (r *Researcher) BatchResearch(ctx context.Context, inputs []model.CompanyInput, opts BatchOptions) []model.BatchResult {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = r.batchCfg.MaxConcurrent
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Duration(r.batchCfg.DelayMillis) * time.Millisecond
	}

	results := make([]model.BatchResult, len(inputs))

	for start := 0; start < len(inputs); start += opts.MaxConcurrent {
		// The pause runs after the previous chunk has fully completed, so the
		// full delay always separates chunk completions from the next start.
		if err := pauseBeforeChunk(ctx, start > 0, opts.Delay); err != nil {
			for i := start; i < len(inputs); i++ {
				results[i] = model.BatchResult{Input: inputs[i], Error: err.Error()}
			}
			break
		}

		end := start + opts.MaxConcurrent
		if end > len(inputs) {
			end = len(inputs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := r.Research(ctx, inputs[i])
				if err != nil {
					zap.L().Warn("batch: company research failed",
						zap.String("company", inputs[i].Name),
						zap.Error(err),
					)
					results[i] = model.BatchResult{Input: inputs[i], Error: err.Error()}
					return
				}
				results[i] = model.BatchResult{Input: inputs[i], Result: result}
			}(i)
		}
		wg.Wait()

		zap.L().Info("batch: chunk complete",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("total", len(inputs)),
		)
	}

	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Score(), results[j].Score()
		if si != sj {
			return si > sj
		}
		// Errored entries sort after real zero-score results.
		return results[i].Result != nil && results[j].Result == nil
	})

	return results
}

// pauseBeforeChunk sleeps for the inter-chunk delay, aborting early on
// context cancellation. The first chunk starts without a pause but still
// honors an already-cancelled context.
func pauseBeforeChunk(ctx context.Context, pause bool, delay time.Duration) error {
	if !pause || delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
