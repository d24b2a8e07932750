// internal/catalog/templates.go
package catalog

// defaultTemplates is the canonical slide order for a generated deck. The
// Required flag marks the slides every plan must carry; the rest are
// adaptively optional and included only when the scorer finds support. The
// distinction is configuration here, never inferred at repair time.
func defaultTemplates() []Template {
	return []Template{
		{
			ID:          "business_overview",
			Template:    "business_overview",
			Position:    1,
			Title:       "Business Overview",
			ContentKey:  "business_overview_data",
			Keywords:    []string{"company", "business", "overview", "what does", "industry", "sector"},
			MinKeywords: 2,
			Required:    true,
		},
		{
			ID:          "management_team",
			Template:    "management_team",
			Position:    2,
			Title:       "Management Team",
			ContentKey:  "management_team",
			Keywords:    []string{"management", "team", "ceo", "cfo", "founder", "executive", "leadership"},
			MinKeywords: 2,
			Required:    true,
		},
		{
			ID:          "historical_financial_performance",
			Template:    "historical_financial_performance",
			Position:    3,
			Title:       "Historical Financial Performance",
			ContentKey:  "facts",
			Keywords:    []string{"revenue", "financial", "ebitda", "growth", "profit", "sales", "million", "billion", "$"},
			MinKeywords: 3,
			Required:    true,
		},
		{
			ID:          "product_service_footprint",
			Template:    "product_service_footprint",
			Position:    4,
			Title:       "Product & Service Footprint",
			ContentKey:  "product_service_data",
			Keywords:    []string{"products", "services", "offerings", "geographic", "footprint", "coverage", "operations"},
			MinKeywords: 2,
		},
		{
			ID:          "growth_strategy_projections",
			Template:    "growth_strategy_projections",
			Position:    5,
			Title:       "Growth Strategy & Projections",
			ContentKey:  "growth_strategy_data",
			Keywords:    []string{"growth", "strategy", "expansion", "projections", "future", "roadmap", "plans"},
			MinKeywords: 2,
		},
		{
			ID:          "competitive_positioning",
			Template:    "competitive_positioning",
			Position:    6,
			Title:       "Competitive Positioning",
			ContentKey:  "competitive_analysis",
			Keywords:    []string{"competitive", "competitors", "positioning", "advantages", "differentiation", "market position"},
			MinKeywords: 2,
		},
		{
			ID:          "valuation_overview",
			Template:    "valuation_overview",
			Position:    7,
			Title:       "Valuation Overview",
			ContentKey:  "valuation_data",
			Keywords:    []string{"valuation", "multiple", "worth", "value", "enterprise value", "methodology"},
			MinKeywords: 2,
		},
		{
			ID:          "precedent_transactions",
			Template:    "precedent_transactions",
			Position:    8,
			Title:       "Precedent Transactions",
			ContentKey:  "precedent_transactions",
			Keywords:    []string{"transaction", "acquisition", "deal", "m&a", "precedent", "multiple"},
			MinKeywords: 2,
		},
		{
			ID:           "strategic_buyers",
			Template:     "buyer_profiles",
			Position:     9,
			Title:        "Strategic Buyer Profiles",
			ContentKey:   "strategic_buyers",
			Keywords:     []string{"buyer", "strategic", "acquirer", "synergy", "corporate", "investment"},
			MinKeywords:  2,
			TableHeaders: []string{"Buyer Name", "Description", "Strategic Rationale", "Key Synergies", "Fit"},
		},
		{
			ID:           "financial_buyers",
			Template:     "buyer_profiles",
			Position:     10,
			Title:        "Financial Buyer Profiles",
			ContentKey:   "financial_buyers",
			Keywords:     []string{"buyer", "financial", "private equity", "pe", "fund", "sponsor"},
			MinKeywords:  2,
			TableHeaders: []string{"Buyer Name", "Description", "Investment Rationale", "Key Synergies", "Fit"},
		},
		{
			ID:          "investor_considerations",
			Template:    "investor_considerations",
			Position:    11,
			Title:       "Investor Considerations",
			ContentKey:  "investor_considerations",
			Keywords:    []string{"risk", "opportunity", "challenges", "considerations", "mitigation"},
			MinKeywords: 2,
		},
		{
			ID:          "margin_cost_resilience",
			Template:    "margin_cost_resilience",
			Position:    12,
			Title:       "Margin & Cost Resilience",
			ContentKey:  "margin_cost_data",
			Keywords:    []string{"margin", "cost", "resilience", "efficiency", "profitability", "cost management"},
			MinKeywords: 2,
		},
		{
			ID:          "investor_process_overview",
			Template:    "investor_process_overview",
			Position:    13,
			Title:       "Investor Process Overview",
			ContentKey:  "investor_process_data",
			Keywords:    []string{"process", "diligence", "timeline", "synergy", "due diligence"},
			MinKeywords: 2,
		},
		{
			ID:           "sea_conglomerates",
			Template:     "sea_conglomerates",
			Position:     14,
			Title:        "Global Conglomerates",
			ContentKey:   "sea_conglomerates",
			Keywords:     []string{"conglomerate", "global", "multinational", "international", "diversified"},
			MinKeywords:  1,
			TableHeaders: []string{"Company", "Country", "Description", "Key Financials"},
		},
	}
}

// requiredContentSections is the fixed set of top-level sections a repaired
// ContentDocument must contain.
func requiredContentSections() []string {
	return []string{
		"entities",
		"facts",
		"charts",
		"management_team",
		"investor_considerations",
		"competitive_analysis",
		"precedent_transactions",
		"valuation_data",
		"sea_conglomerates",
		"strategic_buyers",
		"financial_buyers",
		"product_service_data",
		"business_overview_data",
		"growth_strategy_data",
		"investor_process_data",
		"margin_cost_data",
	}
}
