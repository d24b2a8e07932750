// internal/repair/finance.go
package repair

import (
	"fmt"
	"strconv"
	"strings"

	"pitchdeck-pipeline/internal/models"
)

// deriveEnterpriseValue fills valuation_data.enterprise_value_usd_m from the
// latest revenue figure when no enterprise value was provided.
func (r *Repairer) deriveEnterpriseValue(doc models.ContentDocument, issues *[]models.ValidationIssue) {
	valuation, ok := doc.SectionMap("valuation_data")
	if !ok {
		return
	}
	if v, ok := valuation["enterprise_value_usd_m"]; ok && !isEmptyValue(v) {
		return
	}

	revenue := latestRevenue(doc)
	if revenue <= 0 {
		return
	}

	ev := revenue * r.config.RevenueMultiple
	valuation["enterprise_value_usd_m"] = ev
	r.record(issues, models.SeverityMissing, "valuation_data.enterprise_value_usd_m",
		fmt.Sprintf("derived as %.1f from latest revenue", ev), "enterprise_value_derived")
}

func latestRevenue(doc models.ContentDocument) float64 {
	facts, ok := doc.SectionMap("facts")
	if !ok {
		return 0
	}
	series, ok := facts["revenue_usd_m"].([]interface{})
	if !ok || len(series) == 0 {
		return 0
	}
	return toFloat(series[len(series)-1])
}

// convertBuyersToConglomerates synthesizes conglomerate entries from buyer
// profiles when the conglomerates section came back empty. Buyer financials
// are flattened into the key_financials display string.
func (r *Repairer) convertBuyersToConglomerates(doc models.ContentDocument, issues *[]models.ValidationIssue) {
	if !r.config.ConvertBuyerFinancials {
		return
	}
	if existing, ok := doc.SectionList("sea_conglomerates"); ok && len(existing) > 0 {
		return
	}

	var converted []interface{}
	for _, section := range []string{"strategic_buyers", "financial_buyers"} {
		buyers, ok := doc.SectionList(section)
		if !ok {
			continue
		}
		for _, b := range buyers {
			buyer, ok := b.(map[string]interface{})
			if !ok {
				continue
			}
			entry := map[string]interface{}{
				"name":           stringField(buyer, "name", "buyer_name", "company"),
				"country":        stringFieldDefault(buyer, "Global", "country", "region", "headquarters"),
				"description":    stringField(buyer, "description", "overview"),
				"key_financials": buyerFinancials(buyer),
			}
			if entry["name"] == "" {
				continue
			}
			converted = append(converted, entry)
		}
	}

	if len(converted) == 0 {
		return
	}
	doc["sea_conglomerates"] = converted
	r.record(issues, models.SeverityEmpty, "sea_conglomerates",
		fmt.Sprintf("%d entries synthesized from buyer profiles", len(converted)), "buyer_conversion")
}

// buyerFinancials formats whatever financial figures a buyer profile carries
// into one display string.
func buyerFinancials(buyer map[string]interface{}) string {
	if s := stringField(buyer, "key_financials", "financials"); s != "" {
		return s
	}
	var parts []string
	if v := toFloat(buyer["revenue_usd_m"]); v > 0 {
		parts = append(parts, fmt.Sprintf("Revenue: $%sM", trimFloat(v)))
	}
	if v := toFloat(buyer["market_cap_usd_m"]); v > 0 {
		parts = append(parts, fmt.Sprintf("Market cap: $%sM", trimFloat(v)))
	}
	if v := toFloat(buyer["aum_usd_m"]); v > 0 {
		parts = append(parts, fmt.Sprintf("AUM: $%sM", trimFloat(v)))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, ", ")
}

// normalizeValuationRows repairs valuation overview rows in place: stringly
// numeric cells become numbers, the metric and methodology_type are inferred
// from the methodology text, and FY-style multiple keys are folded into the
// 22a/23e columns. Column-hide flags are written onto the slide data under
// the keys the renderer reads. Returns whether anything changed.
func normalizeValuationRows(data map[string]interface{}, rows []interface{}) bool {
	changed := false
	anyMetric, any22a, any23e := false, false, false

	for _, raw := range rows {
		row, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		for k, v := range row {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if f, ok := parseMoney(s); ok {
				row[k] = f
				changed = true
			}
		}

		meth := strings.ToLower(stringField(row, "methodology"))
		if isEmptyValue(row["metric"]) {
			switch {
			case strings.Contains(meth, "precedent") || strings.Contains(meth, "trading"):
				row["metric"] = "EV/Revenue"
				changed = true
			case strings.Contains(meth, "dcf") || strings.Contains(meth, "discounted"):
				row["metric"] = "DCF"
				changed = true
			}
		}

		changed = foldMultipleAlias(row, "22a_multiple", "22A_multiple", "FY22_multiple") || changed
		changed = foldMultipleAlias(row, "23e_multiple", "23E_multiple", "FY23E_multiple") || changed

		if isEmptyValue(row["methodology_type"]) {
			switch {
			case strings.Contains(meth, "precedent"):
				row["methodology_type"] = "precedent_transactions"
				changed = true
			case strings.Contains(meth, "trading"):
				row["methodology_type"] = "trading_comps"
				changed = true
			case strings.Contains(meth, "dcf") || strings.Contains(meth, "discounted"):
				row["methodology_type"] = "dcf"
				changed = true
			}
		}

		anyMetric = anyMetric || !isEmptyValue(row["metric"])
		any22a = any22a || !isEmptyValue(row["22a_multiple"])
		any23e = any23e || !isEmptyValue(row["23e_multiple"])
	}

	changed = setColumnFlag(data, "__hide_metric_col", !anyMetric) || changed
	changed = setColumnFlag(data, "__hide_22a_col", !any22a) || changed
	changed = setColumnFlag(data, "__hide_23e_col", !any23e) || changed
	return changed
}

// foldMultipleAlias moves the first alias key onto the canonical column,
// defaulting to "-" when no variant is present.
func foldMultipleAlias(row map[string]interface{}, canonical string, aliases ...string) bool {
	if _, ok := row[canonical]; ok {
		return false
	}
	for _, a := range aliases {
		if v, ok := row[a]; ok {
			row[canonical] = v
			delete(row, a)
			return true
		}
	}
	row[canonical] = "-"
	return true
}

func setColumnFlag(data map[string]interface{}, key string, val bool) bool {
	if cur, ok := data[key].(bool); ok && cur == val {
		return false
	}
	data[key] = val
	return true
}

// parseMoney parses "300", "$300", "$300M", "1,200" style figures. Plain
// words and ranges are left alone.
func parseMoney(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, ",", "")
	t = strings.TrimSuffix(t, "M")
	t = strings.TrimSuffix(t, "m")
	if t == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		if f, ok := parseMoney(x); ok {
			return f
		}
	}
	return 0
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func stringField(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringFieldDefault(m map[string]interface{}, def string, keys ...string) string {
	if s := stringField(m, keys...); s != "" {
		return s
	}
	return def
}
