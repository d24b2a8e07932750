// internal/repair/contract.go
package repair

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"pitchdeck-pipeline/internal/models"
)

// checkContract validates the repaired pair against the output contract.
// Repair must leave nothing for this check to find; a failure here is a bug
// in the repair rules, surfaced loudly rather than passed downstream.
func (r *Repairer) checkContract(doc models.ContentDocument, slides []map[string]interface{}) error {
	contentSchema := map[string]interface{}{
		"type":     "object",
		"required": r.catalog.RequiredSections(),
	}
	if err := validateAgainst(contentSchema, map[string]interface{}(doc), "content document"); err != nil {
		return err
	}

	planSchema := map[string]interface{}{
		"type":     "array",
		"minItems": 1,
		"items": map[string]interface{}{
			"type":     "object",
			"required": []string{"template", "data"},
			"properties": map[string]interface{}{
				"template": map[string]interface{}{"type": "string", "minLength": 1},
				"data":     map[string]interface{}{"type": "object"},
			},
		},
	}
	return validateAgainst(planSchema, slides, "render plan slides")
}

func validateAgainst(schema map[string]interface{}, document interface{}, what string) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContractViolation, what, err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return fmt.Errorf("%w: %s: %s", ErrContractViolation, what, strings.Join(details, "; "))
}
