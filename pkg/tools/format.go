package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// renderJSON serializes a structured result to indented JSON. Map keys are
// emitted in sorted order, so the same result always renders to the same
// text.
func renderJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Only unmarshalable values (channels, funcs) can land here and
		// handlers never return those.
		return fmt.Sprintf(`{"success": false, "error": %q}`, err.Error())
	}
	return string(data)
}

// rupees renders a currency amount as "₹1,234.56": two decimals, comma
// thousands grouping, rupee prefix.
func rupees(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := int64(math.Floor(v))
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	return "₹" + sign + groupThousands(whole) + fmt.Sprintf(".%02d", cents)
}

// percent renders a ratio already scaled to percent, e.g. 15.0 -> "15.00%".
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
