// internal/catalog/topics.go
package catalog

// defaultTopics is the built-in 14-topic investment banking interview.
func defaultTopics() []Topic {
	return []Topic{
		{
			ID:                 "business_overview",
			Position:           1,
			Question:           "What is your company name and give me a brief overview of what your business does?",
			SatisfactionPrompt: "Are you satisfied with the business overview information provided, or would you like me to research any specific aspects further?",
			Keywords:           []string{"company", "business", "industry", "sector", "model", "employees", "offices", "founded"},
			Phrases:            []string{"company name", "overview of what your business", "business overview"},
		},
		{
			ID:                 "product_service_footprint",
			Position:           2,
			Question:           "Now let's discuss your product/service footprint. What are your main offerings? Please provide the title and description for each product/service. Also, where do you operate geographically and what's your market coverage?",
			SatisfactionPrompt: "Are you satisfied with the product/service information, or would you like me to investigate any specific areas further?",
			Keywords:           []string{"product", "service", "customer", "client", "solution", "offerings", "geographic", "differentiation"},
			Phrases:            []string{"product/service footprint", "main offerings", "market coverage"},
		},
		{
			ID:                 "historical_financial_performance",
			Position:           3,
			Question:           "Let's analyze your historical financial performance. Can you provide your revenue, EBITDA, margins, and key financial metrics for the last 3-5 years? I need specific numbers: annual revenue in USD millions, EBITDA figures, margin percentages, growth rates, and key performance drivers. What are the main revenue streams and how have they evolved?",
			SatisfactionPrompt: "Are you satisfied with the financial performance analysis, or would you like me to investigate any specific financial areas further?",
			Keywords:           []string{"revenue", "sales", "ebitda", "margin", "growth", "profit"},
			Phrases:            []string{"historical financial performance", "key financial metrics", "revenue streams"},
		},
		{
			ID:                 "management_team",
			Position:           4,
			Question:           "Now I need information about your management team. Can you provide names, titles, and brief backgrounds for 4-6 key executives including CEO, CFO, and other senior leaders?",
			SatisfactionPrompt: "Are you satisfied with the management team information, or would you like me to research any specific executives further?",
			Keywords:           []string{"ceo", "cfo", "founder", "executive", "management", "leadership", "background"},
			Phrases:            []string{"management team", "key executives", "senior leaders"},
		},
		{
			ID:                 "growth_strategy_projections",
			Position:           5,
			Question:           "Let's discuss your growth strategy and projections. What are your expansion plans, strategic initiatives, and financial projections for the next 3-5 years?",
			SatisfactionPrompt: "Are you satisfied with the growth strategy information, or would you like me to investigate any specific growth areas further?",
			Keywords:           []string{"growth", "strategy", "projection", "projections", "expansion", "plan", "target"},
			Phrases:            []string{"growth strategy", "expansion plans", "financial projections"},
		},
		{
			ID:                 "competitive_positioning",
			Position:           6,
			Question:           "How is your company positioned competitively? I need information about key competitors, your competitive advantages, market positioning, and differentiation factors.",
			SatisfactionPrompt: "Are you satisfied with the competitive analysis, or would you like me to research any specific competitors further?",
			Keywords:           []string{"competitor", "competitors", "competition", "advantage", "share", "position"},
			Phrases:            []string{"positioned competitively", "competitive advantages", "key competitors"},
		},
		{
			ID:                 "precedent_transactions",
			Position:           7,
			Question:           "Now let's examine precedent transactions. Focus ONLY on private market M&A transactions where one company acquired another company. I need recent corporate acquisitions in your industry with target company, acquirer, transaction date, enterprise value, and multiples.",
			SatisfactionPrompt: "Are you satisfied with the precedent transactions analysis, or would you like me to research additional transactions?",
			Keywords:           []string{"transaction", "transactions", "acquisition", "merger", "deal", "multiple", "acquirer"},
			Phrases:            []string{"precedent transactions", "m&a transactions", "corporate acquisitions"},
		},
		{
			ID:                 "valuation_overview",
			Position:           8,
			Question:           "What valuation methodologies would be most appropriate for your business? Based on your financial performance and growth projections, I recommend: (1) DCF Analysis with your specific cash flow projections and discount rate, (2) Trading Multiples from comparable public companies in your sector, and (3) Precedent Transactions from recent M&A deals. What's your expected enterprise value range?",
			SatisfactionPrompt: "Are you satisfied with the valuation analysis, or would you like me to investigate any specific valuation aspects further?",
			Keywords:           []string{"valuation", "dcf", "multiple", "multiples", "comps", "enterprise"},
			Phrases:            []string{"valuation methodologies", "enterprise value range", "trading multiples"},
		},
		{
			ID:                 "strategic_buyers",
			Position:           9,
			Question:           "Now let's identify potential strategic buyers based on your valuation and geography. I need 4-5 strategic buyers (corporations) who: (1) Can afford your valuation range, (2) Operate in your geographic markets or want to expand there, (3) Would benefit from strategic synergies with your business. Focus on companies in your industry or adjacent sectors.",
			SatisfactionPrompt: "Are you satisfied with the strategic buyers analysis, or would you like me to research additional potential acquirers?",
			Keywords:           []string{"buyer", "buyers", "acquirer", "strategic", "synergy", "synergies", "rationale"},
			Phrases:            []string{"strategic buyers", "strategic synergies", "potential acquirers"},
		},
		{
			ID:                 "financial_buyers",
			Position:           10,
			Question:           "Let's identify PRIVATE EQUITY FIRMS only (NOT venture capital firms, as VCs don't buy companies). I need 4-5 PE firms that: (1) Have the financial capacity for your valuation range, (2) Have experience acquiring companies in your sector/size, (3) Operate in or invest in your geographic regions.",
			SatisfactionPrompt: "Are you satisfied with the private equity analysis, or would you like me to research additional PE firms?",
			Keywords:           []string{"private", "equity", "pe", "fund", "sponsor", "investor"},
			Phrases:            []string{"private equity firms", "pe firms", "financial buyers"},
		},
		{
			ID:                 "sea_conglomerates",
			Position:           11,
			Question:           "Let's identify large conglomerates that could afford your valuation and are relevant to your geographic markets. Based on where your company operates, I need 4-5 conglomerates that: (1) Have the financial capacity for acquisitions in your valuation range, (2) Either operate in your regions OR want to expand into your markets.",
			SatisfactionPrompt: "Are you satisfied with the conglomerates analysis, or would you like me to research additional potential buyers?",
			Keywords:           []string{"conglomerate", "conglomerates", "regional", "group", "diversified", "multinational"},
			Phrases:            []string{"large conglomerates", "geographic markets"},
		},
		{
			ID:                 "margin_cost_resilience",
			Position:           12,
			Question:           "Let's discuss margin and cost data. Can you provide your EBITDA margins for the last 2-3 years, key cost management initiatives, and main risk mitigation strategies for cost control?",
			SatisfactionPrompt: "Are you satisfied with the margin and cost analysis, or would you like me to investigate any specific cost areas further?",
			Keywords:           []string{"margin", "margins", "cost", "resilience", "efficiency", "scalable", "structure"},
			Phrases:            []string{"margin and cost data", "ebitda margins", "cost management initiatives"},
		},
		{
			ID:                 "investor_considerations",
			Position:           13,
			Question:           "Now let's discuss investor considerations. What are the key RISKS and OPPORTUNITIES investors should know about your business? What concerns might they have and how do you mitigate these risks?",
			SatisfactionPrompt: "Are you satisfied with the risk and opportunity analysis, or would you like me to investigate any specific investor concerns further?",
			Keywords:           []string{"risk", "risks", "opportunity", "opportunities", "challenge", "threat", "mitigation", "upside"},
			Phrases:            []string{"investor considerations", "risks and opportunities"},
		},
		{
			ID:                 "investor_process_overview",
			Position:           14,
			Question:           "Finally, what would the investment/acquisition process look like? I need diligence topics investors would focus on, key synergy opportunities, main risk factors and mitigation strategies, and expected timeline for the transaction process.",
			SatisfactionPrompt: "Are you satisfied with the process overview, or would you like me to investigate any specific aspects of the transaction process further?",
			Keywords:           []string{"process", "timeline", "diligence", "documentation", "requirements"},
			Phrases:            []string{"process look like", "diligence topics", "transaction process"},
		},
	}
}
