package dashboard

import (
	"math"
	"strconv"
	"strings"

	"go_backoffice/internal/model"
)

// statusAliases maps accepted spellings onto the canonical enum
var statusAliases = map[string]string{
	"canceled": model.OrderStatusCancelled,
}

// NormalizeStatus trims and lowercases a raw order status and resolves
// known aliases. Unrecognized values pass through unchanged so callers
// can count them in a catch-all bucket instead of dropping the order.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := statusAliases[s]; ok {
		return canonical
	}
	return s
}

// IsCanonicalStatus reports whether the (already normalized) status is
// one of the canonical order statuses
func IsCanonicalStatus(status string) bool {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing,
		model.OrderStatusShipped, model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	}
	return false
}

// countsRevenue reports whether orders in this normalized status
// contribute to revenue totals
func countsRevenue(status string) bool {
	return status == model.OrderStatusShipped || status == model.OrderStatusDelivered
}

// CoerceAmount turns a loosely typed JSON value (number or string) into
// a float64. Strings are stripped down to digits, '.' and '-' before
// parsing. Anything that does not parse to a finite number coerces to 0
// so NaN never propagates into sums.
func CoerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return CoerceAmount(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		var b strings.Builder
		for _, r := range n {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				b.WriteRune(r)
			}
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}
