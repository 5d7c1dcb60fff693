package schema

import "fmt"

// goldenAngle drives the hue rotation so any category count gets visually
// distinct, deterministic, order-dependent colors.
const goldenAngle = 137.508

// riskPalette is the fixed palette for risk-level charts, keyed in
// declared order and cycled modulo its length.
var riskPalette = []string{
	"rgba(220, 53, 69, 0.6)", // High Risk
	"rgba(40, 167, 69, 0.6)", // Low Risk
	"rgba(255, 193, 7, 0.6)", // Medium Risk
}

// GenerateColors returns count background colors. Risk charts draw from the
// fixed palette; everything else rotates hues by the golden angle at fixed
// saturation, lightness, and alpha.
func GenerateColors(count int, isRiskChart bool) []string {
	colors := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if isRiskChart {
			colors = append(colors, riskPalette[i%len(riskPalette)])
		} else {
			hue := float64(i) * goldenAngle
			for hue >= 360 {
				hue -= 360
			}
			colors = append(colors, fmt.Sprintf("hsla(%.3f, 70%%, 50%%, 0.6)", hue))
		}
	}
	return colors
}

// BorderColor derives a fully opaque border color from an rgba or hsla
// background color by swapping the trailing 0.6 alpha for 1.
func BorderColor(background string) string {
	if len(background) < 4 {
		return background
	}
	const alpha = "0.6)"
	if background[len(background)-len(alpha):] == alpha {
		return background[:len(background)-len(alpha)] + "1)"
	}
	return background
}
