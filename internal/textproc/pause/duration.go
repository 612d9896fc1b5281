package pause

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// maxBareNumberSeconds bounds the fallback that treats a standalone
// number as seconds; anything larger is more likely a page or verse
// reference than a pause length.
const maxBareNumberSeconds = 300

// numberWithUnit finds a number and a time unit, tolerating up to two
// ordinary words in between ("14 reale Minuten").
var numberWithUnit = regexp.MustCompile(
	`(?i)(\d+(?:[.,]\d+)?)(?:\s+\p{L}+){0,2}?\s*\b(sekunden?|sek\.?|seconds?|sec\.?|minuten?|min\.?|minutes?|stunden?|std\.?|hours?|h)\b`)

// wordWithUnit recognises a small set of spelled-out number words
// directly before a minute or second unit.
var wordWithUnit = regexp.MustCompile(
	`(?i)\b(eine[rn]?|zwei|drei|vier|fünf|sechs|sieben|acht|neun|zehn|one|two|three|four|five|six|seven|eight|nine|ten|halbe[rn]?)\s+(minuten?|sekunden?|minutes?|seconds?)\b`)

var numberWords = map[string]float64{
	"eine": 1, "einer": 1, "einen": 1, "one": 1,
	"zwei": 2, "two": 2,
	"drei": 3, "three": 3,
	"vier": 4, "four": 4,
	"fünf": 5, "five": 5,
	"sechs": 6, "six": 6,
	"sieben": 7, "seven": 7,
	"acht": 8, "eight": 8,
	"neun": 9, "nine": 9,
	"zehn": 10, "ten": 10,
	"halbe": 0.5, "halber": 0.5, "halben": 0.5,
}

var bareNumber = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)

// ExtractDuration derives the suggested pause duration in seconds from
// a directive line. Recognised, in order: a number with a time unit, a
// spelled-out number word with a unit, any standalone number up to 300
// treated as seconds. Without any of those the fixed default applies.
func ExtractDuration(line string) float64 {
	if m := numberWithUnit.FindStringSubmatch(line); m != nil {
		value := parseNumber(m[1])
		return clamp(value * unitFactor(m[2]))
	}

	if m := wordWithUnit.FindStringSubmatch(line); m != nil {
		value := numberWords[strings.ToLower(m[1])]
		return clamp(value * unitFactor(m[2]))
	}

	if m := bareNumber.FindString(line); m != "" {
		value := parseNumber(m)
		if value > 0 && value <= maxBareNumberSeconds {
			return clamp(value)
		}
	}

	return domain.DefaultSuggestedSeconds
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

func unitFactor(unit string) float64 {
	switch strings.ToLower(strings.TrimSuffix(unit, "."))[0] {
	case 's':
		if strings.HasPrefix(strings.ToLower(unit), "st") {
			return 3600 // Stunden
		}
		return 1
	case 'm':
		return 60
	case 'h':
		return 3600
	default:
		return 1
	}
}

func clamp(seconds float64) float64 {
	if seconds < domain.MinPauseSeconds {
		return domain.MinPauseSeconds
	}
	return seconds
}
