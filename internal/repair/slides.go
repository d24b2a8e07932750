// internal/repair/slides.go
package repair

import (
	"fmt"
	"sort"

	"pitchdeck-pipeline/internal/models"
)

// normalizeSlides coerces every slide into the template+data shape, applies
// the per-template data repairs, infers missing content keys, and restores
// canonical slide order.
func (r *Repairer) normalizeSlides(plan map[string]interface{}, issues *[]models.ValidationIssue) []map[string]interface{} {
	rawSlides, _ := plan["slides"].([]interface{})
	slides := make([]map[string]interface{}, 0, len(rawSlides))

	for i, raw := range rawSlides {
		slide, ok := raw.(map[string]interface{})
		if !ok {
			r.record(issues, models.SeverityMalformed, fmt.Sprintf("slides[%d]", i), "slide is not an object, dropped", "slide_dropped")
			continue
		}
		if _, ok := slide["template"].(string); !ok {
			r.record(issues, models.SeverityMalformed, fmt.Sprintf("slides[%d]", i), "slide has no template name, dropped", "slide_dropped")
			continue
		}
		if _, ok := slide["data"].(map[string]interface{}); !ok {
			slide["data"] = map[string]interface{}{}
			r.record(issues, models.SeverityEmpty, fmt.Sprintf("slides[%d].data", i), "slide data missing, empty object added", "slide_data")
		}
		slides = append(slides, slide)
	}

	for i, slide := range slides {
		r.repairSlideData(slide, i, issues)
	}

	r.inferContentKeys(slides, issues)
	slides = r.canonicalOrder(slides)
	return slides
}

// repairSlideData fixes the recurring shape defects inside one slide's data.
func (r *Repairer) repairSlideData(slide map[string]interface{}, idx int, issues *[]models.ValidationIssue) {
	data := slide["data"].(map[string]interface{})
	path := func(field string) string { return fmt.Sprintf("slides[%d].data.%s", idx, field) }

	// key_metrics must be an object holding the metric list.
	if list, ok := data["key_metrics"].([]interface{}); ok {
		data["key_metrics"] = map[string]interface{}{"metrics": list}
		r.record(issues, models.SeverityStructural, path("key_metrics"), "metric list wrapped in object", "key_metrics_wrap")
	}

	// chart payloads travel under chart_data.
	if chart, ok := data["chart"]; ok {
		if _, exists := data["chart_data"]; !exists {
			data["chart_data"] = chart
		}
		delete(data, "chart")
		r.record(issues, models.SeverityStructural, path("chart"), "chart renamed to chart_data", "chart_rename")
	}

	if chartData, ok := data["chart_data"].(map[string]interface{}); ok {
		if years, ok := chartData["years"]; ok {
			if _, exists := chartData["categories"]; !exists {
				chartData["categories"] = years
			}
			delete(chartData, "years")
			r.record(issues, models.SeverityStructural, path("chart_data.years"), "years renamed to categories", "chart_axis_rename")
		}
		if margins, ok := chartData["margins"]; ok {
			if _, exists := chartData["values"]; !exists {
				chartData["values"] = margins
			}
			delete(chartData, "margins")
			r.record(issues, models.SeverityStructural, path("chart_data.margins"), "margins renamed to values", "chart_axis_rename")
		}
	}

	// coverage_table rows given as objects are rebuilt as headers plus rows.
	if table, ok := data["coverage_table"]; ok {
		if fixed, changed := normalizeTable(table); changed {
			data["coverage_table"] = fixed
			r.record(issues, models.SeverityStructural, path("coverage_table"), "object rows converted to header and row arrays", "table_rows")
		}
	}

	// Valuation rows travel as valuation_rows or, in older responses, as a
	// valuation_data list directly on the slide.
	for _, field := range []string{"valuation_rows", "valuation_data"} {
		rows, ok := data[field].([]interface{})
		if !ok {
			continue
		}
		if normalizeValuationRows(data, rows) {
			r.record(issues, models.SeverityStructural, path(field), "valuation rows repaired", "valuation_rows")
		}
	}
}

// normalizeTable converts a list of row objects (or a table whose rows are
// objects) into {"headers": [...], "rows": [[...]]}. Already converted tables
// pass through unchanged.
func normalizeTable(table interface{}) (interface{}, bool) {
	switch t := table.(type) {
	case []interface{}:
		if len(t) == 0 {
			return table, false
		}
		if _, ok := t[0].(map[string]interface{}); !ok {
			return table, false
		}
		return rowsFromObjects(t), true
	case map[string]interface{}:
		rows, ok := t["rows"].([]interface{})
		if !ok || len(rows) == 0 {
			return table, false
		}
		if _, ok := rows[0].(map[string]interface{}); !ok {
			return table, false
		}
		converted := rowsFromObjects(rows)
		t["headers"] = converted["headers"]
		t["rows"] = converted["rows"]
		return t, true
	}
	return table, false
}

func rowsFromObjects(objs []interface{}) map[string]interface{} {
	// Header order follows first appearance across all rows so every column
	// survives even when rows are ragged.
	var headers []string
	seen := map[string]struct{}{}
	for _, o := range objs {
		row, ok := o.(map[string]interface{})
		if !ok {
			continue
		}
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				headers = append(headers, k)
			}
		}
	}

	rows := make([]interface{}, 0, len(objs))
	for _, o := range objs {
		row, ok := o.(map[string]interface{})
		if !ok {
			continue
		}
		cells := make([]interface{}, 0, len(headers))
		for _, h := range headers {
			if v, ok := row[h]; ok {
				cells = append(cells, v)
			} else {
				cells = append(cells, "")
			}
		}
		rows = append(rows, cells)
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	return map[string]interface{}{"headers": headerCells, "rows": rows}
}

// inferContentKeys assigns the catalog content key to slides missing one.
// Templates serving several catalog entries, like buyer_profiles, are
// resolved positionally: first occurrence takes the first catalog entry.
func (r *Repairer) inferContentKeys(slides []map[string]interface{}, issues *[]models.ValidationIssue) {
	used := map[string]int{}
	for i, slide := range slides {
		if key, ok := slide["content_ir_key"].(string); ok && key != "" {
			continue
		}
		tmplName, _ := slide["template"].(string)
		candidates := r.catalog.TemplatesForRender(tmplName)
		if len(candidates) == 0 {
			if tmpl, ok := r.catalog.TemplateByID(tmplName); ok {
				candidates = append(candidates, tmpl)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		n := used[tmplName]
		used[tmplName] = n + 1
		if n >= len(candidates) {
			n = len(candidates) - 1
		}
		slide["content_ir_key"] = candidates[n].ContentKey
		r.record(issues, models.SeverityMissing, fmt.Sprintf("slides[%d].content_ir_key", i),
			fmt.Sprintf("content key inferred as %q", candidates[n].ContentKey), "content_key_inferred")
	}
}

// canonicalOrder sorts slides by catalog position. Slides the catalog does
// not know keep their relative order after the known ones.
func (r *Repairer) canonicalOrder(slides []map[string]interface{}) []map[string]interface{} {
	pos := func(slide map[string]interface{}) int {
		if key, ok := slide["content_ir_key"].(string); ok {
			for _, tmpl := range r.catalog.Templates() {
				if tmpl.ContentKey == key {
					return tmpl.Position
				}
			}
		}
		if name, ok := slide["template"].(string); ok {
			if tmpl, ok := r.catalog.TemplateByID(name); ok {
				return tmpl.Position
			}
		}
		return len(r.catalog.Templates()) + 1
	}

	sort.SliceStable(slides, func(a, b int) bool {
		return pos(slides[a]) < pos(slides[b])
	})
	return slides
}
