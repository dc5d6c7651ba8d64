// Package risk maps a stroke probability to a risk band and canned advice.
package risk

import "fmt"

// Band is the triage outcome for one scan.
type Band string

const (
	Low    Band = "Low"
	Medium Band = "Medium"
	High   Band = "High"
)

// Fixed cut points. p < 0.3 is Low, p < 0.7 is Medium, everything else High.
const (
	lowUpper    = 0.3
	mediumUpper = 0.7
)

var advice = map[Band]string{
	Low:    "Regular check-ups recommended. Maintain healthy lifestyle.",
	Medium: "Schedule follow-up with doctor. Consider preventive measures.",
	High:   "Immediate medical attention recommended. Contact your healthcare provider.",
}

const defaultAdvice = "Please consult with your healthcare provider."

// BandFor converts a probability to a risk band. Total over [0,1].
func BandFor(p float64) Band {
	switch {
	case p < lowUpper:
		return Low
	case p < mediumUpper:
		return Medium
	default:
		return High
	}
}

// Advice returns the canned advice for a band. Unknown bands get a
// generic fallback.
func Advice(b Band) string {
	if a, ok := advice[b]; ok {
		return a
	}
	return defaultAdvice
}

// Clamp restricts p to [0,1].
func Clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FormatConfidence renders a probability as a percentage string, e.g. "82.0%".
func FormatConfidence(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
