// internal/pipeline/pipeline.go
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/config"
	commonerrors "pitchdeck-pipeline/internal/common/errors"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/common/metrics"
	"pitchdeck-pipeline/internal/extractor"
	"pitchdeck-pipeline/internal/models"
	"pitchdeck-pipeline/internal/repair"
	"pitchdeck-pipeline/internal/scorer"
	"pitchdeck-pipeline/internal/tracker"
)

// Pipeline is the facade over the four analysis components. Each public
// method is independent; the host calls whichever combination its workflow
// needs.
type Pipeline struct {
	tracker   *tracker.Tracker
	scorer    *scorer.Scorer
	extractor *extractor.Extractor
	repairer  *repair.Repairer
	errs      *commonerrors.Handler
	logger    logger.Logger
}

// New wires the components from the application config. A nil catalog means
// the built-in interview.
func New(cfg *config.Config, cat *catalog.Catalog, log logger.Logger) *Pipeline {
	if cat == nil {
		cat = catalog.New()
	}

	trackerCfg := &tracker.Config{
		MinAnswerWords:      cfg.Tracker.MinAnswerWords,
		MinResearchChars:    cfg.Tracker.MinResearchChars,
		MinResearchKeywords: cfg.Tracker.MinResearchKeywords,
	}
	scorerCfg := &scorer.Config{
		RecommendThreshold:  cfg.Scorer.RecommendThreshold,
		BorderlineThreshold: cfg.Scorer.BorderlineThreshold,
		MaxSlides:           cfg.Scorer.MaxSlides,
		MinSlides:           cfg.Scorer.MinSlides,
		ContextBonusCap:     cfg.Scorer.ContextBonusCap,
	}
	extractorCfg := &extractor.Config{
		MaxScanBytes: cfg.Extractor.MaxScanBytes,
	}
	repairCfg := &repair.Config{
		ConvertBuyerFinancials: cfg.Repair.ConvertBuyerFinancials,
		RevenueMultiple:        cfg.Repair.RevenueMultiple,
	}

	return &Pipeline{
		tracker:   tracker.New(trackerCfg, cat, log),
		scorer:    scorer.New(scorerCfg, cat, log),
		extractor: extractor.New(extractorCfg, log),
		repairer:  repair.New(repairCfg, cat, log),
		errs:      commonerrors.NewHandler(log),
		logger:    log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Analyze derives interview progress from the transcript.
func (p *Pipeline) Analyze(transcript models.Transcript) *tracker.Progress {
	runID := uuid.NewString()
	start := time.Now()

	progress := p.tracker.Analyze(transcript)

	metrics.PipelineRunsCompleted.WithLabelValues("analyze").Inc()
	metrics.PipelineRunDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	outcome := "in_progress"
	if progress.IsComplete {
		outcome = "complete"
	}
	metrics.TopicsCovered.WithLabelValues(outcome).Observe(float64(progress.TopicsCovered))

	p.logger.Info("transcript analyzed", map[string]interface{}{
		"runId":         runID,
		"messages":      len(transcript),
		"topicsCovered": progress.TopicsCovered,
		"isComplete":    progress.IsComplete,
	})
	return progress
}

// Score selects the slide templates the conversation supports.
func (p *Pipeline) Score(transcript models.Transcript) *scorer.Selection {
	start := time.Now()

	selection := p.scorer.Score(transcript)

	metrics.PipelineRunsCompleted.WithLabelValues("score").Inc()
	metrics.PipelineRunDuration.WithLabelValues("score").Observe(time.Since(start).Seconds())
	return selection
}

// Process extracts the document pair from a raw model response and repairs
// it. A missing render plan is tolerated: repair backfills the required
// slides from an empty plan. A missing content document is a hard failure.
func (p *Pipeline) Process(raw string) (*repair.Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	extracted := p.extractor.Extract(raw)
	if extracted.Content.Method != "" {
		metrics.ExtractionMethod.WithLabelValues(string(extractor.SlotContent), extracted.Content.Method).Inc()
	}
	if extracted.RenderPlan.Method != "" {
		metrics.ExtractionMethod.WithLabelValues(string(extractor.SlotRenderPlan), extracted.RenderPlan.Method).Inc()
	}

	if extracted.Content.Err != nil {
		metrics.PipelineRunsFailed.WithLabelValues("process", extracted.Content.Err.Error()).Inc()
		return nil, p.errs.Handle("process", runID, extracted.Content.Err)
	}

	plan := extracted.RenderPlan.Document
	if plan == nil {
		p.logger.Warn("render plan missing, starting from empty plan", map[string]interface{}{
			"runId":  runID,
			"reason": extracted.RenderPlan.Err.Error(),
		})
		plan = map[string]interface{}{"slides": []interface{}{}}
	}

	result, err := p.repairer.Repair(models.ContentDocument(extracted.Content.Document), plan)
	if err != nil {
		metrics.PipelineRunsFailed.WithLabelValues("process", "REPAIR_FAILED").Inc()
		return nil, p.errs.Handle("process", runID, err)
	}

	metrics.PipelineRunsCompleted.WithLabelValues("process").Inc()
	metrics.PipelineRunDuration.WithLabelValues("process").Observe(time.Since(start).Seconds())

	p.logger.Info("response processed", map[string]interface{}{
		"runId":   runID,
		"issues":  len(result.Issues),
		"slides":  len(result.Plan.Slides),
		"content": extracted.Content.Method,
	})
	return result, nil
}
