package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"slash ten", "7/10", 7.0},
		{"slash hundred", "70/100", 7.0},
		{"slash thousand", "700/1000", 7.0},
		{"percent", "70%", 7.0},
		{"out of ten", "8 out of 10", 8.0},
		{"out of hundred", "85 out of 100", 8.5},
		{"out of thousand", "650 OUT OF 1000", 6.5},
		{"no numbers", "no numbers here", 0},
		{"decimal", "Score: 7.5 / 10", 7.5},
		{"rounded", "7.25/10", 7.3},
		{"embedded in prose", "The candidate is strong.\n**Score: 9/10**\nGreat fit.", 9.0},
		{"slash ten beats percent", "Matches 40% of skills, overall 6/10", 6.0},
		{"percent is last resort", "roughly 55% match", 5.5},
		{"clamped high", "15/10", 10.0},
		{"empty", "", 0},
		{"negative clamps to zero", "-3/10", 0},
		{"negative percent", "-40%", 0},
		{"range keeps upper bound", "7-8/10", 8},
		{"run-together words", "8outof10", 0},
		{"out of needs spacing", "7 outof 10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeScore(tt.raw))
		})
	}
}

func TestNormalizeScoreStaysInRange(t *testing.T) {
	inputs := []string{"1000/1000", "0/10", "100%", "250%", "9999 out of 10", "3.14159/10"}
	for _, in := range inputs {
		got := NormalizeScore(in)
		assert.GreaterOrEqual(t, got, 0.0, in)
		assert.LessOrEqual(t, got, 10.0, in)
	}
}
