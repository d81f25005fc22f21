package services

import (
	"math"
	"regexp"
	"strconv"
)

const maxScore = 10.0

type scorePattern struct {
	re    *regexp.Regexp
	scale func(value float64, match []string) float64
}

// Ordered by precedence; the first pattern found anywhere in the text wins.
// The trailing \b keeps "/10" from matching the start of "/100". A minus
// directly before the number (not after a digit) makes the score negative,
// which clamps to 0.
var scorePatterns = []scorePattern{
	{
		re:    regexp.MustCompile(`(?i)(?:^|[^\d.])(-?\d+(?:\.\d+)?)\s*/\s*10\b`),
		scale: func(v float64, _ []string) float64 { return v },
	},
	{
		re:    regexp.MustCompile(`(?i)(?:^|[^\d.])(-?\d+(?:\.\d+)?)\s*/\s*100\b`),
		scale: func(v float64, _ []string) float64 { return v / 10 },
	},
	{
		re:    regexp.MustCompile(`(?i)(?:^|[^\d.])(-?\d+(?:\.\d+)?)\s*/\s*1000\b`),
		scale: func(v float64, _ []string) float64 { return v / 100 },
	},
	{
		re: regexp.MustCompile(`(?i)(?:^|[^\d.])(-?\d+(?:\.\d+)?)\s+out\s+of\s+(10|100|1000)\b`),
		scale: func(v float64, m []string) float64 {
			base, _ := strconv.ParseFloat(m[2], 64)
			return v / (base / 10)
		},
	},
	{
		re:    regexp.MustCompile(`(?:^|[^\d.])(-?\d+(?:\.\d+)?)\s*%`),
		scale: func(v float64, _ []string) float64 { return v / 10 },
	},
}

// NormalizeScore extracts a confidence value from free-text model output and
// maps it onto the 0-10 scale, rounded to one decimal. It returns 0 when no
// recognizable pattern is present.
func NormalizeScore(raw string) float64 {
	for _, p := range scorePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return clampScore(roundScore(p.scale(v, m)))
	}
	return 0
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
