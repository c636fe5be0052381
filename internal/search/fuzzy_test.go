package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple words", "Soil Health", []string{"soil", "health"}},
		{"punctuation split", "nitrogen-fixing (legumes), 2024", []string{"nitrogen", "fixing", "legumes", "2024"}},
		{"empty", "   ", nil},
		{"mixed case", "AgriScience JOURNAL", []string{"agriscience", "journal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   int
	}{
		{"exact token", "wheat", []string{"Wheat breeding"}, 0},
		{"substring hit", "irrig", []string{"Irrigation systems"}, 0},
		{"one edit", "irigation", []string{"Irrigation systems"}, 1},
		{"worst token governs", "wheat zebra", []string{"Wheat breeding"}, 5},
		{"second field rescues", "pump", []string{"Crop rotation", "Pump maintenance"}, 0},
		{"no fields", "wheat", nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, score(tokenize(tt.query), tt.fields))
		})
	}
}
