// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"pitchdeck-pipeline/internal/catalog"
	commonerrors "pitchdeck-pipeline/internal/common/errors"
)

// catalogSchema validates the override file before it is trusted to replace
// the built-in interview.
var catalogSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"topics"},
	"properties": map[string]interface{}{
		"topics": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"id", "position", "question"},
				"properties": map[string]interface{}{
					"id":       map[string]interface{}{"type": "string", "minLength": 1},
					"position": map[string]interface{}{"type": "integer", "minimum": 1},
					"question": map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
		"templates": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"id", "template", "position"},
			},
		},
	},
}

// LoadCatalog reads, schema-validates, and builds an interview catalog from
// an override file. Missing templates or sections fall back to the built-in
// definitions so a deployment can override just the questions.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, commonerrors.NewCatalogLoadFailedError(path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, commonerrors.NewSchemaCheckFailedError(err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInvalidCatalog, firstError(result))
	}

	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	builtin := catalog.New()

	topics := make([]catalog.Topic, 0, len(file.Topics))
	for _, t := range file.Topics {
		topics = append(topics, catalog.Topic{
			ID:                 t.ID,
			Position:           t.Position,
			Question:           t.Question,
			SatisfactionPrompt: t.SatisfactionPrompt,
			Keywords:           t.Keywords,
			Phrases:            t.Phrases,
		})
	}

	templates := builtin.Templates()
	if len(file.Templates) > 0 {
		templates = make([]catalog.Template, 0, len(file.Templates))
		for _, t := range file.Templates {
			templates = append(templates, catalog.Template{
				ID:           t.ID,
				Template:     t.Template,
				Position:     t.Position,
				Title:        t.Title,
				ContentKey:   t.ContentKey,
				Keywords:     t.Keywords,
				MinKeywords:  t.MinKeywords,
				Required:     t.Required,
				TableHeaders: t.TableHeaders,
			})
		}
	}

	sections := builtin.RequiredSections()
	if len(file.RequiredSections) > 0 {
		sections = file.RequiredSections
	}

	return catalog.Build(topics, templates, sections)
}

func firstError(result *gojsonschema.Result) string {
	for _, e := range result.Errors() {
		return e.String()
	}
	return "schema validation failed"
}
