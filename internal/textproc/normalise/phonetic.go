package normalise

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
)

// phoneticTable maps terms that German speech synthesis is known to
// mispronounce onto respellings that read correctly. Matching is
// whole-word and case-insensitive; the output mirrors the input's
// casing (all-caps stays all-caps, title case stays title case).
var phoneticTable = []struct {
	Word       string
	Respelling string
}{
	{"Chakra", "Tschakra"},
	{"Chakren", "Tschakren"},
	{"Qi Gong", "Tschi Gung"},
	{"Qigong", "Tschi Gung"},
	{"Tai Chi", "Tai Tschi"},
	{"Ayurveda", "Ajurweda"},
	{"Vinyasa", "Winjasa"},
	{"Savasana", "Schawasana"},
	{"Ujjayi", "Udschaji"},
	{"Namaste", "Namastee"},
	{"Asana", "Aasana"},
	{"Asanas", "Aasanas"},
	{"Prana", "Praana"},
	{"Yin", "Jinn"},
	{"Journal", "Schurnal"},
	{"Genre", "Schoner"},
	{"Regime", "Reschiem"},
	{"Detail", "Detai"},
}

var phoneticRules = compilePhonetic()

func compilePhonetic() []struct {
	re         *regexp.Regexp
	respelling string
} {
	rules := make([]struct {
		re         *regexp.Regexp
		respelling string
	}, 0, len(phoneticTable))

	for _, entry := range phoneticTable {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.Word) + `\b`)
		rules = append(rules, struct {
			re         *regexp.Regexp
			respelling string
		}{re, entry.Respelling})
	}
	return rules
}

// placeholderPattern matches the protector's placeholder tokens. They
// are masked alongside pause tags so respelling never corrupts them.
var placeholderPattern = regexp.MustCompile(`\[\[PROTECTED_STAGE_DIRECTION_\d+\]\]`)

// ApplyPhonetic rewrites every phonetic table entry into its
// respelling. Existing pause tags and protection placeholders are
// masked first and restored afterwards, so system tokens pass through
// untouched no matter what the table contains.
func ApplyPhonetic(text string) string {
	masked, tokens := maskSystemTokens(text)

	for _, rule := range phoneticRules {
		masked = rule.re.ReplaceAllStringFunc(masked, func(match string) string {
			return transferCase(match, rule.respelling)
		})
	}

	return unmaskSystemTokens(masked, tokens)
}

// maskSystemTokens swaps pause tags and placeholders for opaque
// markers that contain no letters.
func maskSystemTokens(text string) (string, []string) {
	var tokens []string
	replace := func(match string) string {
		tokens = append(tokens, match)
		return fmt.Sprintf("\x00%d\x00", len(tokens)-1)
	}
	text = domain.PauseTagPattern.ReplaceAllStringFunc(text, replace)
	text = placeholderPattern.ReplaceAllStringFunc(text, replace)
	return text, tokens
}

func unmaskSystemTokens(text string, tokens []string) string {
	for i, token := range tokens {
		text = strings.Replace(text, fmt.Sprintf("\x00%d\x00", i), token, 1)
	}
	return text
}

// transferCase shapes the respelling after the matched text: all-caps
// input yields all-caps output, an initial capital is preserved, and
// anything else uses the table casing.
func transferCase(match, respelling string) string {
	if match == strings.ToUpper(match) && strings.ContainsFunc(match, unicode.IsLetter) {
		return strings.ToUpper(respelling)
	}
	runes := []rune(match)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		out := []rune(respelling)
		out[0] = unicode.ToUpper(out[0])
		return string(out)
	}
	return strings.ToLower(respelling)
}
