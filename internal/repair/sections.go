// internal/repair/sections.go
package repair

import (
	"fmt"

	"pitchdeck-pipeline/internal/models"
)

// Default financial series used when a document carries no usable facts.
// Estimated years are suffixed with E, matching the convention the renderer
// expects.
func defaultYears() []interface{} {
	return []interface{}{"2020", "2021", "2022", "2023", "2024E"}
}

func defaultRevenue() []interface{} {
	return []interface{}{120.0, 145.0, 180.0, 210.0, 240.0}
}

func defaultEBITDA() []interface{} {
	return []interface{}{18.0, 24.0, 31.0, 40.0, 47.0}
}

// sectionAliases maps frequently seen wrong top-level names to their
// canonical sections. Applied before missing sections are skeletonized so an
// aliased section is preserved rather than duplicated.
var sectionAliases = map[string]string{
	"company_info":            "entities",
	"management":              "management_team",
	"team":                    "management_team",
	"executives":              "management_team",
	"leadership":              "management_team",
	"buyers":                  "strategic_buyers",
	"pe_buyers":               "financial_buyers",
	"competitors":             "competitive_analysis",
	"competitive_positioning": "competitive_analysis",
	"valuation":               "valuation_data",
	"valuation_overview":      "valuation_data",
	"transactions":            "precedent_transactions",
	"precedent_deals":         "precedent_transactions",
	"conglomerates":           "sea_conglomerates",
	"risks_opportunities":     "investor_considerations",
	"financials":              "facts",
	"historical_financials":   "facts",
}

// normalizeSectionNames renames aliased top-level sections in place. A rename
// never overwrites an existing canonical section.
func (r *Repairer) normalizeSectionNames(doc models.ContentDocument, issues *[]models.ValidationIssue) {
	for alias, canonical := range sectionAliases {
		v, ok := doc[alias]
		if !ok {
			continue
		}
		if _, exists := doc[canonical]; exists {
			continue
		}
		doc[canonical] = v
		delete(doc, alias)
		r.record(issues, models.SeverityStructural, canonical,
			fmt.Sprintf("section renamed from %q", alias), "section_alias")
	}
}

// synthesizeEntities builds the entities section from a stray top-level
// company name when the model emitted none. Runs after alias renames so an
// aliased entities section wins over synthesis.
func (r *Repairer) synthesizeEntities(doc models.ContentDocument, issues *[]models.ValidationIssue) {
	if v, ok := doc["entities"]; ok && !isEmptyValue(v) {
		return
	}
	for _, key := range []string{"company_name", "company", "name", "business_name"} {
		v, ok := doc[key]
		if !ok {
			continue
		}
		name := ""
		switch x := v.(type) {
		case string:
			name = x
		case map[string]interface{}:
			name, _ = x["name"].(string)
		}
		if name == "" {
			continue
		}
		doc["entities"] = map[string]interface{}{"company_name": name}
		delete(doc, key)
		r.record(issues, models.SeverityMissing, "entities",
			fmt.Sprintf("entities built from top-level %q", key), "entities_synthesized")
		return
	}
}

// ensureRequiredSections fills in every missing required section with a
// usable skeleton.
func (r *Repairer) ensureRequiredSections(doc models.ContentDocument, issues *[]models.ValidationIssue) {
	for _, section := range r.catalog.RequiredSections() {
		if v, ok := doc[section]; ok && !isEmptyValue(v) {
			continue
		}
		doc[section] = r.sectionSkeleton(section, doc)
		r.record(issues, models.SeverityMissing, section, "required section missing, skeleton added", "section_skeleton")
	}
}

func (r *Repairer) sectionSkeleton(section string, doc models.ContentDocument) interface{} {
	switch section {
	case "entities":
		return map[string]interface{}{"company_name": "the Company"}
	case "facts":
		return map[string]interface{}{
			"years":         defaultYears(),
			"revenue_usd_m": defaultRevenue(),
			"ebitda_usd_m":  defaultEBITDA(),
		}
	case "charts":
		return r.chartsSkeleton(doc)
	case "valuation_data":
		return map[string]interface{}{
			"methodologies": []interface{}{"DCF Analysis", "Trading Multiples", "Precedent Transactions"},
			"rows":          []interface{}{},
		}
	case "investor_process_data":
		return map[string]interface{}{
			"diligence_topics":      []interface{}{"Financial statements", "Customer contracts", "Legal and compliance"},
			"synergy_opportunities": []interface{}{"Revenue cross-sell", "Cost consolidation"},
			"risk_factors":          []interface{}{"Key person dependency", "Customer concentration"},
			"timeline":              []interface{}{"Preparation", "Marketing", "Diligence", "Closing"},
		}
	case "competitive_analysis":
		return map[string]interface{}{
			"competitors": []interface{}{},
			"advantages":  []interface{}{},
		}
	case "business_overview_data", "product_service_data", "growth_strategy_data", "margin_cost_data":
		return map[string]interface{}{}
	default:
		// List-shaped sections: teams, buyers, transactions, considerations.
		return []interface{}{}
	}
}

// chartsSkeleton builds the default chart set from the document's facts, or
// from the default series when facts are absent or incomplete.
func (r *Repairer) chartsSkeleton(doc models.ContentDocument) interface{} {
	years := defaultYears()
	revenue := defaultRevenue()
	ebitda := defaultEBITDA()

	if facts, ok := doc.SectionMap("facts"); ok {
		if v, ok := facts["years"].([]interface{}); ok && len(v) > 0 {
			years = v
		}
		if v, ok := facts["revenue_usd_m"].([]interface{}); ok && len(v) > 0 {
			revenue = v
		}
		if v, ok := facts["ebitda_usd_m"].([]interface{}); ok && len(v) > 0 {
			ebitda = v
		}
	}

	return []interface{}{
		map[string]interface{}{
			"type":       "bar",
			"title":      "Revenue and EBITDA Growth",
			"categories": years,
			"series": []interface{}{
				map[string]interface{}{"name": "Revenue (USD M)", "values": revenue},
				map[string]interface{}{"name": "EBITDA (USD M)", "values": ebitda},
			},
		},
	}
}

func isEmptyValue(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	}
	return false
}
