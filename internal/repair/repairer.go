// internal/repair/repairer.go
package repair

import (
	"errors"
	"fmt"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/common/metrics"
	"pitchdeck-pipeline/internal/models"
)

var (
	ErrNilDocument       = errors.New("NIL_DOCUMENT")
	ErrContractViolation = errors.New("CONTRACT_VIOLATION")
)

// Result is a repaired document pair plus the issue log describing every
// change that was made.
type Result struct {
	Content models.ContentDocument   `json:"content"`
	Plan    *models.RenderPlan       `json:"plan"`
	Issues  []models.ValidationIssue `json:"issues"`
}

// Repairer validates and repairs an extracted document pair. Inputs are never
// mutated; repairs are applied to deep copies. Stateless and safe for
// concurrent use.
type Repairer struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func New(cfg *Config, cat *catalog.Catalog, log logger.Logger) *Repairer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Repairer{
		config:  cfg,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"component": "repair"}),
	}
}

// Repair runs the full rule chain: section normalization and skeletons,
// financial derivations, slide shape repairs, required slide backfill, and
// the final contract check. Repair of an already repaired pair is a no-op
// apart from the issue log.
func (r *Repairer) Repair(content models.ContentDocument, plan map[string]interface{}) (*Result, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: content document", ErrNilDocument)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: render plan", ErrNilDocument)
	}

	doc := models.ContentDocument(deepCopyMap(content))
	planCopy := deepCopyMap(plan)

	var issues []models.ValidationIssue

	r.normalizeSectionNames(doc, &issues)
	r.synthesizeEntities(doc, &issues)
	r.ensureRequiredSections(doc, &issues)
	r.deriveEnterpriseValue(doc, &issues)
	r.convertBuyersToConglomerates(doc, &issues)

	slides := r.normalizeSlides(planCopy, &issues)
	slides = r.ensureRequiredSlides(slides, &issues)

	if err := r.checkContract(doc, slides); err != nil {
		return nil, err
	}

	r.logger.Info("repair complete", map[string]interface{}{
		"issues": len(issues),
		"slides": len(slides),
	})

	return &Result{
		Content: doc,
		Plan:    toRenderPlan(slides, planCopy),
		Issues:  issues,
	}, nil
}

// ensureRequiredSlides backfills a minimal slide for every required template
// the plan lacks, then restores canonical order.
func (r *Repairer) ensureRequiredSlides(slides []map[string]interface{}, issues *[]models.ValidationIssue) []map[string]interface{} {
	for _, tmpl := range r.catalog.Templates() {
		if !tmpl.Required {
			continue
		}
		present := false
		for _, slide := range slides {
			if key, _ := slide["content_ir_key"].(string); key == tmpl.ContentKey {
				present = true
				break
			}
		}
		if present {
			continue
		}
		slides = append(slides, map[string]interface{}{
			"template":       tmpl.Template,
			"content_ir_key": tmpl.ContentKey,
			"data":           map[string]interface{}{"title": tmpl.Title},
		})
		r.record(issues, models.SeverityMissing, "slides",
			fmt.Sprintf("required slide %q missing, skeleton added", tmpl.ID), "slide_skeleton")
	}
	return r.canonicalOrder(slides)
}

// record appends an issue and counts the applied rule.
func (r *Repairer) record(issues *[]models.ValidationIssue, sev models.Severity, path, msg, rule string) {
	*issues = append(*issues, models.ValidationIssue{
		Severity: sev,
		Path:     path,
		Message:  msg,
		Repaired: true,
	})
	metrics.RepairsApplied.WithLabelValues(rule).Inc()
	r.logger.Debug("repair applied", map[string]interface{}{
		"rule": rule,
		"path": path,
	})
}

func toRenderPlan(slides []map[string]interface{}, plan map[string]interface{}) *models.RenderPlan {
	out := &models.RenderPlan{Slides: make([]models.Slide, 0, len(slides))}
	for _, slide := range slides {
		tmplName, _ := slide["template"].(string)
		key, _ := slide["content_ir_key"].(string)
		data, _ := slide["data"].(map[string]interface{})
		out.Slides = append(out.Slides, models.Slide{
			Template:   tmplName,
			ContentKey: key,
			Data:       data,
		})
	}
	if meta, ok := plan["metadata"].(map[string]interface{}); ok {
		out.Metadata = meta
	}
	return out
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(x)
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = deepCopyValue(e)
		}
		return out
	}
	return v
}
