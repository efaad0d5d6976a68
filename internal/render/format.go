package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

// FormatPrice renders a price: thousands-separated over 10k, two decimals
// down to 1, four decimals below (FX pairs need the precision).
func FormatPrice(v models.Value) string {
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	abs := math.Abs(f)
	switch {
	case abs >= 10000:
		return groupThousands(fmt.Sprintf("%.2f", f))
	case abs >= 1:
		return fmt.Sprintf("%.2f", f)
	default:
		return fmt.Sprintf("%.4f", f)
	}
}

// FormatValue renders a sidebar value: numeric readings rounded to two
// decimals with trailing zeros dropped, text passed through.
func FormatValue(v models.Value) string {
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// FormatChange renders a percent change with an explicit sign.
func FormatChange(v models.Value) string {
	f, ok := v.Float()
	if !ok {
		return models.NASentinel
	}
	if f >= 0 {
		return fmt.Sprintf("+%.2f%%", f)
	}
	return fmt.Sprintf("%.2f%%", f)
}

// ChangeClass is the display class for a change value: "up", "down" or "na".
func ChangeClass(v models.Value) string {
	f, ok := v.Float()
	if !ok {
		return "na"
	}
	if f >= 0 {
		return "up"
	}
	return "down"
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
