// internal/models/document.go
package models

// ContentDocument is the structured-facts artifact extracted from a model
// response: section id -> nested value (map, slice, or primitive). It is
// plain decoded JSON so the repairer can inspect and rewrite any shape the
// model produced.
type ContentDocument map[string]interface{}

// Section returns the named top-level section and whether it exists.
func (d ContentDocument) Section(id string) (interface{}, bool) {
	v, ok := d[id]
	return v, ok
}

// SectionMap returns the named section when it is an object.
func (d ContentDocument) SectionMap(id string) (map[string]interface{}, bool) {
	m, ok := d[id].(map[string]interface{})
	return m, ok
}

// SectionList returns the named section when it is an array.
func (d ContentDocument) SectionList(id string) ([]interface{}, bool) {
	l, ok := d[id].([]interface{})
	return l, ok
}

// Slide is one entry of a render plan. Data holds the template-specific
// payload; ContentKey, when set, must reference a ContentDocument section.
type Slide struct {
	Template   string                 `json:"template"`
	ContentKey string                 `json:"content_ir_key,omitempty"`
	Data       map[string]interface{} `json:"data"`
}

// RenderPlan is the ordered slide list handed to the external renderer.
// Slide order is semantically meaningful.
type RenderPlan struct {
	Slides   []Slide                `json:"slides"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Severity classifies a validation issue.
type Severity string

const (
	SeverityMissing    Severity = "missing"
	SeverityEmpty      Severity = "empty"
	SeverityMalformed  Severity = "malformed"
	SeverityStructural Severity = "structural"
)

// ValidationIssue records one structural deficiency found (and possibly
// repaired) in a document pair. Path is a dotted JSON path such as
// "slides[3].data.key_metrics".
type ValidationIssue struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Repaired bool     `json:"repaired"`
}
