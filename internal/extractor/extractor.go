// internal/extractor/extractor.go
package extractor

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
)

var (
	ErrEmptyResponse  = errors.New("EMPTY_RESPONSE")
	ErrNoMarkersFound = errors.New("NO_MARKERS_FOUND")
	ErrMalformedJSON  = errors.New("MALFORMED_JSON")
)

// Slot names one of the two documents an analysis response may carry.
type Slot string

const (
	SlotContent    Slot = "content_ir"
	SlotRenderPlan Slot = "render_plan"
)

// Extraction methods, recorded for observability.
const (
	MethodMarker = "marker"
	MethodFence  = "fence"
	MethodScan   = "scan"
)

// contentMarkers and renderMarkers are matched case-insensitively, longest
// first so "content ir json" wins over "content ir".
var contentMarkers = []string{
	"content ir json:",
	"content_ir json:",
	"content ir:",
	"content_ir:",
}

var renderMarkers = []string{
	"render plan json:",
	"render_plan json:",
	"render plan:",
	"render_plan:",
}

// contentSignatures are top-level keys whose presence classifies an unlabeled
// JSON object as a content document.
var contentSignatures = []string{
	"entities",
	"facts",
	"management_team",
	"historical_financials",
	"strategic_buyers",
	"financial_buyers",
	"investor_considerations",
}

// SlotResult is the per-slot outcome: exactly one of Document or Err is set.
type SlotResult struct {
	Document map[string]interface{}
	Method   string
	Err      error
}

// Result carries both slot outcomes. Extraction is total: a missing or
// unparseable slot is reported through its Err, never as a panic or a nil
// Result.
type Result struct {
	Content    SlotResult
	RenderPlan SlotResult
}

// Extractor locates and parses the structured documents embedded in a raw
// model response. Stateless and safe for concurrent use.
type Extractor struct {
	config *Config
	logger logger.Logger
	md     goldmark.Markdown
}

func New(cfg *Config, log logger.Logger) *Extractor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Extractor{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "extractor"}),
		md:     goldmark.New(),
	}
}

// Extract runs the strategy chain for both slots: explicit markers, fenced
// code blocks, then a raw brace scan with signature classification.
func (e *Extractor) Extract(raw string) *Result {
	res := &Result{}
	if strings.TrimSpace(raw) == "" {
		res.Content = SlotResult{Err: ErrEmptyResponse}
		res.RenderPlan = SlotResult{Err: ErrEmptyResponse}
		return res
	}
	if len(raw) > e.config.MaxScanBytes {
		raw = raw[:e.config.MaxScanBytes]
	}

	fenced := e.fencedBlocks(raw)

	res.Content = e.extractSlot(raw, fenced, SlotContent)
	res.RenderPlan = e.extractSlot(raw, fenced, SlotRenderPlan)

	e.logger.Debug("extraction finished", map[string]interface{}{
		"contentMethod": res.Content.Method,
		"contentErr":    errString(res.Content.Err),
		"renderMethod":  res.RenderPlan.Method,
		"renderErr":     errString(res.RenderPlan.Err),
	})
	return res
}

func (e *Extractor) extractSlot(raw string, fenced []string, slot Slot) SlotResult {
	sawPayload := false

	// 1. Explicit markers.
	if doc, found := e.byMarker(raw, slot); doc != nil {
		return SlotResult{Document: doc, Method: MethodMarker}
	} else if found {
		sawPayload = true
	}

	// 2. Fenced code blocks classified by shape.
	for _, block := range fenced {
		candidate := removeTrailingCommas(cleanPayload(block))
		if classify(candidate) != slot {
			continue
		}
		sawPayload = true
		if doc := parseObject(candidate); doc != nil {
			return SlotResult{Document: doc, Method: MethodFence}
		}
	}

	// 3. Raw scan for balanced objects.
	pos := 0
	for {
		obj, next, ok := balancedObject(raw, pos)
		if !ok {
			break
		}
		pos = next
		candidate := removeTrailingCommas(obj)
		if classify(candidate) != slot {
			continue
		}
		sawPayload = true
		if doc := parseObject(candidate); doc != nil {
			return SlotResult{Document: doc, Method: MethodScan}
		}
	}

	if sawPayload {
		return SlotResult{Err: ErrMalformedJSON}
	}
	return SlotResult{Err: ErrNoMarkersFound}
}

// byMarker looks for the slot's marker and parses the object that follows.
// The second return reports whether a marker with some payload was present
// at all, parseable or not.
func (e *Extractor) byMarker(raw string, slot Slot) (map[string]interface{}, bool) {
	markers := contentMarkers
	if slot == SlotRenderPlan {
		markers = renderMarkers
	}

	lower := lowerASCII(raw)
	found := false
	for _, m := range markers {
		offset := 0
		for {
			idx := strings.Index(lower[offset:], m)
			if idx < 0 {
				break
			}
			idx += offset
			offset = idx + len(m)
			found = true

			tail := removeTrailingCommas(cleanPayload(raw[idx+len(m):]))
			obj, _, ok := balancedObject(tail, 0)
			if !ok {
				continue
			}
			if doc := parseObject(obj); doc != nil {
				return doc, true
			}
		}
	}
	return nil, found
}

// fencedBlocks parses raw as markdown and returns the body of every fenced
// code block.
func (e *Extractor) fencedBlocks(raw string) []string {
	source := []byte(raw)
	doc := e.md.Parser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok {
			var sb strings.Builder
			lines := fc.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(source))
			}
			blocks = append(blocks, sb.String())
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// classify decides which slot an unlabeled JSON object belongs to: a top
// level "slides" array marks a render plan, a known content section marks a
// content document.
func classify(jsonStr string) Slot {
	if !gjson.Valid(jsonStr) {
		// Fall back to cheap prefix checks so malformed payloads still land
		// in the right slot and produce the right error.
		if strings.Contains(jsonStr, `"slides"`) {
			return SlotRenderPlan
		}
		for _, key := range contentSignatures {
			if strings.Contains(jsonStr, `"`+key+`"`) {
				return SlotContent
			}
		}
		return ""
	}
	if gjson.Get(jsonStr, "slides").IsArray() {
		return SlotRenderPlan
	}
	for _, key := range contentSignatures {
		if gjson.Get(jsonStr, key).Exists() {
			return SlotContent
		}
	}
	return ""
}

func parseObject(s string) map[string]interface{} {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil
	}
	return doc
}

// ContentDocument converts the content slot into its model type.
func (r *Result) ContentDocument() (models.ContentDocument, error) {
	if r.Content.Err != nil {
		return nil, r.Content.Err
	}
	return models.ContentDocument(r.Content.Document), nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
