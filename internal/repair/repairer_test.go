// internal/repair/repairer_test.go
package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
)

func newTestRepairer(t *testing.T) *Repairer {
	t.Helper()
	return New(DefaultConfig(), catalog.New(), logger.NewTestLogger(t))
}

func minimalPlan() map[string]interface{} {
	return map[string]interface{}{"slides": []interface{}{}}
}

func planFromResult(plan *models.RenderPlan) map[string]interface{} {
	slides := make([]interface{}, 0, len(plan.Slides))
	for _, s := range plan.Slides {
		slide := map[string]interface{}{
			"template": s.Template,
			"data":     s.Data,
		}
		if s.ContentKey != "" {
			slide["content_ir_key"] = s.ContentKey
		}
		slides = append(slides, slide)
	}
	return map[string]interface{}{"slides": slides}
}

func TestRepairNilDocuments(t *testing.T) {
	r := newTestRepairer(t)

	_, err := r.Repair(nil, minimalPlan())
	assert.ErrorIs(t, err, ErrNilDocument)

	_, err = r.Repair(models.ContentDocument{}, nil)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestRepairEmptyDocumentPair(t *testing.T) {
	r := newTestRepairer(t)

	res, err := r.Repair(models.ContentDocument{}, minimalPlan())
	require.NoError(t, err)

	for _, section := range catalog.New().RequiredSections() {
		_, ok := res.Content[section]
		assert.True(t, ok, "section %s must exist", section)
	}

	// Required slides are backfilled in canonical order.
	require.Len(t, res.Plan.Slides, 3)
	assert.Equal(t, "business_overview", res.Plan.Slides[0].Template)
	assert.Equal(t, "management_team", res.Plan.Slides[1].Template)
	assert.Equal(t, "historical_financial_performance", res.Plan.Slides[2].Template)
	assert.NotEmpty(t, res.Issues)
}

func TestRepairChartsBuiltFromFacts(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{
		"facts": map[string]interface{}{
			"years":         []interface{}{"2022", "2023"},
			"revenue_usd_m": []interface{}{80.0, 100.0},
			"ebitda_usd_m":  []interface{}{12.0, 18.0},
		},
	}

	res, err := r.Repair(content, minimalPlan())
	require.NoError(t, err)

	charts, ok := res.Content.SectionList("charts")
	require.True(t, ok)
	require.Len(t, charts, 1)
	chart := charts[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"2022", "2023"}, chart["categories"])
}

func TestRepairEnterpriseValueDerivation(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{
		"facts": map[string]interface{}{
			"years":         []interface{}{"2022", "2023"},
			"revenue_usd_m": []interface{}{80.0, 100.0},
		},
		"valuation_data": map[string]interface{}{"rows": []interface{}{}},
	}

	res, err := r.Repair(content, minimalPlan())
	require.NoError(t, err)

	valuation, ok := res.Content.SectionMap("valuation_data")
	require.True(t, ok)
	assert.InDelta(t, 300.0, valuation["enterprise_value_usd_m"], 0.001)
}

func TestRepairSlideShapes(t *testing.T) {
	r := newTestRepairer(t)
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{
				"template": "historical_financial_performance",
				"data": map[string]interface{}{
					"key_metrics": []interface{}{"Revenue CAGR 22%", "EBITDA margin 19%"},
					"chart": map[string]interface{}{
						"years":   []interface{}{"2022", "2023"},
						"margins": []interface{}{17.0, 19.0},
					},
				},
			},
		},
	}

	res, err := r.Repair(models.ContentDocument{}, plan)
	require.NoError(t, err)

	var slide models.Slide
	for _, s := range res.Plan.Slides {
		if s.Template == "historical_financial_performance" {
			slide = s
		}
	}
	require.NotNil(t, slide.Data)

	metricsObj, ok := slide.Data["key_metrics"].(map[string]interface{})
	require.True(t, ok, "metric list must be wrapped in an object")
	assert.Len(t, metricsObj["metrics"], 2)

	_, hasChart := slide.Data["chart"]
	assert.False(t, hasChart)
	chartData, ok := slide.Data["chart_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"2022", "2023"}, chartData["categories"])
	assert.Equal(t, []interface{}{17.0, 19.0}, chartData["values"])
}

func TestRepairCoverageTableRows(t *testing.T) {
	r := newTestRepairer(t)
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{
				"template": "product_service_footprint",
				"data": map[string]interface{}{
					"coverage_table": []interface{}{
						map[string]interface{}{"region": "APAC", "coverage": "Full"},
						map[string]interface{}{"region": "EMEA", "coverage": "Partial"},
					},
				},
			},
		},
	}

	res, err := r.Repair(models.ContentDocument{}, plan)
	require.NoError(t, err)

	var data map[string]interface{}
	for _, s := range res.Plan.Slides {
		if s.Template == "product_service_footprint" {
			data = s.Data
		}
	}
	require.NotNil(t, data)

	table, ok := data["coverage_table"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"coverage", "region"}, table["headers"])
	rows := table["rows"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"Full", "APAC"}, rows[0])
}

func TestRepairContentKeyInference(t *testing.T) {
	r := newTestRepairer(t)
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{"template": "buyer_profiles", "data": map[string]interface{}{}},
			map[string]interface{}{"template": "buyer_profiles", "data": map[string]interface{}{}},
		},
	}

	res, err := r.Repair(models.ContentDocument{}, plan)
	require.NoError(t, err)

	var keys []string
	for _, s := range res.Plan.Slides {
		if s.Template == "buyer_profiles" {
			keys = append(keys, s.ContentKey)
		}
	}
	assert.Equal(t, []string{"strategic_buyers", "financial_buyers"}, keys)
}

func TestRepairCanonicalSlideOrder(t *testing.T) {
	r := newTestRepairer(t)
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{"template": "valuation_overview", "data": map[string]interface{}{}},
			map[string]interface{}{"template": "business_overview", "data": map[string]interface{}{}},
			map[string]interface{}{"template": "management_team", "data": map[string]interface{}{}},
		},
	}

	res, err := r.Repair(models.ContentDocument{}, plan)
	require.NoError(t, err)

	var order []string
	for _, s := range res.Plan.Slides {
		order = append(order, s.Template)
	}
	assert.Equal(t, []string{
		"business_overview",
		"management_team",
		"historical_financial_performance",
		"valuation_overview",
	}, order)
}

func TestRepairBuyerConversion(t *testing.T) {
	content := models.ContentDocument{
		"strategic_buyers": []interface{}{
			map[string]interface{}{
				"name":          "MegaCorp Industries",
				"country":       "Singapore",
				"description":   "Diversified industrial group",
				"revenue_usd_m": 5000.0,
			},
		},
	}

	t.Run("enabled", func(t *testing.T) {
		r := newTestRepairer(t)
		res, err := r.Repair(content, minimalPlan())
		require.NoError(t, err)

		cons, ok := res.Content.SectionList("sea_conglomerates")
		require.True(t, ok)
		require.Len(t, cons, 1)
		entry := cons[0].(map[string]interface{})
		assert.Equal(t, "MegaCorp Industries", entry["name"])
		assert.Equal(t, "Singapore", entry["country"])
		assert.Equal(t, "Revenue: $5000M", entry["key_financials"])
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ConvertBuyerFinancials = false
		r := New(cfg, catalog.New(), logger.NewTestLogger(t))

		res, err := r.Repair(content, minimalPlan())
		require.NoError(t, err)

		cons, _ := res.Content.SectionList("sea_conglomerates")
		assert.Empty(t, cons)
	})
}

func TestRepairSectionAliases(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{
		"management": []interface{}{
			map[string]interface{}{"name": "Jane Doe", "title": "CEO"},
		},
	}

	res, err := r.Repair(content, minimalPlan())
	require.NoError(t, err)

	team, ok := res.Content.SectionList("management_team")
	require.True(t, ok)
	require.Len(t, team, 1)

	// Input must not be mutated.
	_, aliasStillThere := content["management"]
	assert.True(t, aliasStillThere)
	_, canonicalAdded := content["management_team"]
	assert.False(t, canonicalAdded)
}

func TestRepairContentFieldAliases(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{
		"company_info": map[string]interface{}{"company_name": "Acme Industrial"},
		"pe_buyers": []interface{}{
			map[string]interface{}{"name": "Growth Equity Partners"},
		},
		"executives": []interface{}{
			map[string]interface{}{"name": "Jane Doe", "title": "CEO"},
		},
	}

	res, err := r.Repair(content, minimalPlan())
	require.NoError(t, err)

	entities, ok := res.Content.SectionMap("entities")
	require.True(t, ok)
	assert.Equal(t, "Acme Industrial", entities["company_name"])

	buyers, ok := res.Content.SectionList("financial_buyers")
	require.True(t, ok)
	require.Len(t, buyers, 1)

	team, ok := res.Content.SectionList("management_team")
	require.True(t, ok)
	require.Len(t, team, 1)
}

func TestRepairEntitiesFromTopLevelName(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{"company_name": "Blue Harbor Logistics"}

	res, err := r.Repair(content, minimalPlan())
	require.NoError(t, err)

	entities, ok := res.Content.SectionMap("entities")
	require.True(t, ok)
	assert.Equal(t, "Blue Harbor Logistics", entities["company_name"])

	_, leftover := res.Content["company_name"]
	assert.False(t, leftover)
}

func TestRepairValuationOverviewRows(t *testing.T) {
	r := newTestRepairer(t)
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{
				"template": "valuation_overview",
				"data": map[string]interface{}{
					"valuation_rows": []interface{}{
						map[string]interface{}{
							"methodology":   "Precedent Transactions",
							"FY22_multiple": "4.5x",
							"value":         "$300M",
						},
						map[string]interface{}{"methodology": "DCF Analysis"},
					},
				},
			},
		},
	}

	res, err := r.Repair(models.ContentDocument{}, plan)
	require.NoError(t, err)

	var data map[string]interface{}
	for _, s := range res.Plan.Slides {
		if s.Template == "valuation_overview" {
			data = s.Data
		}
	}
	require.NotNil(t, data)

	rows := data["valuation_rows"].([]interface{})
	require.Len(t, rows, 2)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, "EV/Revenue", first["metric"])
	assert.Equal(t, "4.5x", first["22a_multiple"])
	assert.Equal(t, "-", first["23e_multiple"])
	assert.Equal(t, "precedent_transactions", first["methodology_type"])
	assert.InDelta(t, 300.0, first["value"], 0.001)
	_, hasAlias := first["FY22_multiple"]
	assert.False(t, hasAlias, "alias column must fold into 22a_multiple")

	second := rows[1].(map[string]interface{})
	assert.Equal(t, "DCF", second["metric"])
	assert.Equal(t, "dcf", second["methodology_type"])

	assert.Equal(t, false, data["__hide_metric_col"])
	assert.Equal(t, false, data["__hide_22a_col"])
	assert.Equal(t, false, data["__hide_23e_col"])
}

func TestRepairIdempotent(t *testing.T) {
	r := newTestRepairer(t)
	content := models.ContentDocument{
		"facts": map[string]interface{}{
			"years":         []interface{}{"2022", "2023"},
			"revenue_usd_m": []interface{}{80.0, 100.0},
		},
		"strategic_buyers": []interface{}{
			map[string]interface{}{"name": "MegaCorp", "revenue_usd_m": 5000.0},
		},
	}
	plan := map[string]interface{}{
		"slides": []interface{}{
			map[string]interface{}{
				"template": "historical_financial_performance",
				"data": map[string]interface{}{
					"key_metrics": []interface{}{"Revenue CAGR 22%"},
				},
			},
		},
	}

	first, err := r.Repair(content, plan)
	require.NoError(t, err)

	second, err := r.Repair(first.Content, planFromResult(first.Plan))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Plan, second.Plan)
}
