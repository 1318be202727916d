package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ppiankov/claimguard/internal/cache"
	"github.com/ppiankov/claimguard/internal/classify"
	"github.com/ppiankov/claimguard/internal/estimand"
	"github.com/ppiankov/claimguard/internal/explain"
	"github.com/ppiankov/claimguard/internal/llm"
	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/probe"
	"github.com/ppiankov/claimguard/internal/scm"
	"github.com/ppiankov/claimguard/internal/trust"
	"github.com/ppiankov/claimguard/internal/vocab"
)

// Pipeline orchestrates the complete claim analysis
type Pipeline struct {
	vocab      *vocab.Table
	classifier *classify.Classifier
	builder    *scm.Builder
	estimator  *estimand.Service
	prober     *probe.Analyzer
	engine     *trust.Engine
	composer   *explain.Composer
	narrator   *llm.Narrator // Optional LLM narrator (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	table, err := vocab.New(cfg.Vocab)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	aggregator, err := trust.NewAggregator(cfg.Trust.Aggregation)
	if err != nil {
		return nil, fmt.Errorf("configure trust aggregation: %w", err)
	}

	var store *cache.SignalStore
	if cfg.Cache.Enabled {
		store = cache.NewSignalStore(cache.NewLayeredCache(cfg.Cache.Dir, cfg.Cache.TTL), cfg.Cache.TTL)
	}

	// Create LLM narrator if configured
	var narrator *llm.Narrator
	if cfg.LLM.Provider != "" {
		n, err := llm.NewNarrator(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			zap.L().Warn("failed to initialize LLM provider", zap.Error(err))
		} else {
			narrator = n
		}
	}

	return &Pipeline{
		vocab:      table,
		classifier: classify.NewClassifier(),
		builder:    scm.NewBuilder(table),
		estimator:  estimand.NewService(),
		prober:     probe.NewAnalyzer(cfg.HTTP, cfg.Signals, store),
		engine:     trust.NewEngine(aggregator),
		composer:   explain.NewComposer(),
		narrator:   narrator,
		config:     cfg,
	}, nil
}

// Vocabulary exposes the loaded vocabulary table
func (p *Pipeline) Vocabulary() *vocab.Table {
	return p.vocab
}

// Analyze runs the full analysis for one claim: ladder classification, SCM
// construction, identifiability, evidence probing and trust scoring, and
// the deterministic explanation. The analysis is stateless; the same claim
// and signals always produce the same result.
func (p *Pipeline) Analyze(ctx context.Context, claim model.Claim) (*model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	domain := p.vocab.ResolveName(claim.Domain)

	// 1. Classify the claim on the causal ladder
	rung := p.classifier.Classify(claim.Text)

	// 2. Build the SCM template from the domain vocabulary
	template := p.builder.Build(claim.Text, claim.Domain)

	// 3. Decide identifiability and derive the estimand
	estimandResult := p.estimator.Compute(template)

	// 4. Probe source URLs concurrently
	signals := p.collectSignals(ctx, claim.Sources)

	// 5. Score each source and aggregate
	tuples, aggregated := p.engine.ScoreAll(claim.Sources, signals)

	// 6. Compose the deterministic explanation
	explanation := p.composer.Compose(claim.Text, domain, rung, template, estimandResult, aggregated)

	analysis := &model.Analysis{
		TextClaim:       claim.Text,
		Domain:          domain,
		Rung:            rung,
		Template:        template,
		Estimand:        estimandResult,
		SourceTrust:     tuples,
		AggregatedTrust: aggregated,
		Explanation:     explanation,
	}

	// 7. Generate LLM narrative if enabled (AFTER scoring, never affects results)
	if p.narrator != nil && p.narrator.IsEnabled() {
		narrative, err := p.narrator.Generate(ctx, *analysis)
		if err != nil {
			zap.L().Warn("LLM narrative generation failed", zap.Error(err))
		} else if narrative != nil {
			analysis.LLM = narrative
		}
	}

	return analysis, nil
}

// collectSignals probes every source that has a URL, bounded by the
// configured worker count. signals[i] corresponds to sources[i]; entries
// stay nil for sources without URLs or probes skipped on cancellation.
func (p *Pipeline) collectSignals(ctx context.Context, sources []model.SourceRef) []*model.URLSignal {
	signals := make([]*model.URLSignal, len(sources))
	if len(sources) == 0 {
		return signals
	}

	workers := p.config.Concurrency.SignalWorkers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, src := range sources {
		if src.URL == "" {
			continue
		}

		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			sig := p.prober.Analyze(ctx, rawURL)
			signals[idx] = &sig
		}(i, src.URL)
	}

	wg.Wait()

	return signals
}
