package sanitise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean text is a no-op",
			input: "Ein sauberer Satz.\n\nNoch einer.",
			want:  "Ein sauberer Satz.\n\nNoch einer.",
		},
		{
			name:  "code fences removed",
			input: "```text\nDer Inhalt.\n```",
			want:  "Der Inhalt.",
		},
		{
			name:  "wrapping quotes removed",
			input: `"Der ganze Text."`,
			want:  "Der ganze Text.",
		},
		{
			name:  "inner quotes survive",
			input: `Er sagte "hallo" und ging.`,
			want:  `Er sagte "hallo" und ging.`,
		},
		{
			name:  "german preamble line removed",
			input: "Hier ist der bereinigte Text:\nDer Inhalt.",
			want:  "Der Inhalt.",
		},
		{
			name:  "english preamble removed",
			input: "Of course! Here is the cleaned text:\nDer Inhalt.",
			want:  "Der Inhalt.",
		},
		{
			name:  "preamble on same line as content",
			input: "Hier ist der Text: Der Inhalt.",
			want:  "Der Inhalt.",
		},
		{
			name:  "trailing note removed",
			input: "Der Inhalt.\n(Anmerkung: Ich habe die Überschriften entfernt.)",
			want:  "Der Inhalt.",
		},
		{
			name:  "bold and italic markers removed",
			input: "Das ist **wichtig** und das *auch*.",
			want:  "Das ist wichtig und das auch.",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n\n  Der Inhalt.  \n",
			want:  "Der Inhalt.",
		},
		{
			name:  "pause tags survive",
			input: "Atme ein. [PAUSE 2.5s] Atme aus.",
			want:  "Atme ein. [PAUSE 2.5s] Atme aus.",
		},
		{
			name:  "placeholders survive",
			input: "Text\n[[PROTECTED_STAGE_DIRECTION_0]]\nText",
			want:  "Text\n[[PROTECTED_STAGE_DIRECTION_0]]\nText",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.input))
		})
	}
}

func TestCleanResponseIdempotent(t *testing.T) {
	inputs := []string{
		"Ein Satz.",
		"```\nText\n```",
		"Hier ist der Text:\nInhalt.",
	}
	for _, input := range inputs {
		once := CleanResponse(input)
		assert.Equal(t, once, CleanResponse(once))
	}
}
