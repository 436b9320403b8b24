package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"lowercases and dedups", "Yoga yoga YOGA", []string{"yoga"}},
		{"drops stopwords", "yoga in the park", []string{"yoga", "park"}},
		{"splits punctuation", "hiit, spin & strength", []string{"hiit", "spin", "strength"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
