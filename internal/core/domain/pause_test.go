package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPauseTag(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "whole seconds render without decimal", seconds: 840, want: "[PAUSE 840s]"},
		{name: "one decimal place kept", seconds: 2.5, want: "[PAUSE 2.5s]"},
		{name: "rounded to one decimal", seconds: 1.234, want: "[PAUSE 1.2s]"},
		{name: "rounds up", seconds: 0.55, want: "[PAUSE 0.6s]"},
		{name: "clamped to minimum", seconds: 0, want: "[PAUSE 0.1s]"},
		{name: "negative clamped to minimum", seconds: -3, want: "[PAUSE 0.1s]"},
		{name: "trailing zero trimmed", seconds: 2.0, want: "[PAUSE 2s]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPauseTag(tt.seconds))
		})
	}
}

func TestPauseTagPattern(t *testing.T) {
	assert.True(t, PauseTagPattern.MatchString("text [PAUSE 2s] more"))
	assert.True(t, PauseTagPattern.MatchString("[PAUSE 0.1s]"))
	assert.True(t, PauseTagPattern.MatchString("[PAUSE 840s]"))
	assert.False(t, PauseTagPattern.MatchString("[PAUSE s]"))
	assert.False(t, PauseTagPattern.MatchString("[pause 2s]"))
}
