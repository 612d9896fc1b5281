// Package normalise provides the pure text-to-text rewrite passes that
// run before and after the delegated rewrite step: abbreviation
// expansion, user-defined literal replacements and phonetic respelling.
//
// All passes are total; they cannot fail. A malformed user rule is
// skipped with a warning, never aborting the run.
package normalise

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviationEntry is one (pattern, expansion) pair of the static
// table. Entries are literal text, matched case-insensitively as whole
// tokens, and applied in table order (first match wins per position).
type abbreviationEntry struct {
	Abbr      string
	Expansion string
}

// abbreviationTable covers common German abbreviations, titles and
// units that speech synthesis reads poorly. Longer entries come first
// so compound forms win over their fragments.
var abbreviationTable = []abbreviationEntry{
	{"i.d.R.", "in der Regel"},
	{"i. d. R.", "in der Regel"},
	{"u.v.m.", "und vieles mehr"},
	{"u. v. m.", "und vieles mehr"},
	{"v.Chr.", "vor Christus"},
	{"v. Chr.", "vor Christus"},
	{"n.Chr.", "nach Christus"},
	{"n. Chr.", "nach Christus"},
	{"z.B.", "zum Beispiel"},
	{"z. B.", "zum Beispiel"},
	{"d.h.", "das heißt"},
	{"d. h.", "das heißt"},
	{"u.a.", "unter anderem"},
	{"u. a.", "unter anderem"},
	{"o.ä.", "oder ähnliches"},
	{"o. ä.", "oder ähnliches"},
	{"u.U.", "unter Umständen"},
	{"u. U.", "unter Umständen"},
	{"z.T.", "zum Teil"},
	{"z. T.", "zum Teil"},
	{"m.E.", "meines Erachtens"},
	{"o.g.", "oben genannt"},
	{"s.o.", "siehe oben"},
	{"s.u.", "siehe unten"},
	{"Dr.", "Doktor"},
	{"Prof.", "Professor"},
	{"Dipl.", "Diplom"},
	{"Ing.", "Ingenieur"},
	{"Hr.", "Herr"},
	{"Fr.", "Frau"},
	{"St.", "Sankt"},
	{"Str.", "Straße"},
	{"Nr.", "Nummer"},
	{"Abs.", "Absatz"},
	{"Art.", "Artikel"},
	{"Bd.", "Band"},
	{"Abb.", "Abbildung"},
	{"Kap.", "Kapitel"},
	{"Anm.", "Anmerkung"},
	{"Jh.", "Jahrhundert"},
	{"Tel.", "Telefon"},
	{"Mio.", "Millionen"},
	{"Mrd.", "Milliarden"},
	{"Tsd.", "Tausend"},
	{"Std.", "Stunden"},
	{"Min.", "Minuten"},
	{"Sek.", "Sekunden"},
	{"bzw.", "beziehungsweise"},
	{"bzgl.", "bezüglich"},
	{"zzgl.", "zuzüglich"},
	{"usw.", "und so weiter"},
	{"etc.", "et cetera"},
	{"ca.", "circa"},
	{"inkl.", "inklusive"},
	{"exkl.", "exklusive"},
	{"ggf.", "gegebenenfalls"},
	{"evtl.", "eventuell"},
	{"max.", "maximal"},
	{"sog.", "sogenannte"},
	{"bspw.", "beispielsweise"},
	{"insb.", "insbesondere"},
	{"vgl.", "vergleiche"},
	{"geb.", "geboren"},
	{"gest.", "gestorben"},
	{"engl.", "englisch"},
	{"dt.", "deutsch"},
}

// abbreviationRules holds the compiled table.
var abbreviationRules = compileAbbreviations()

func compileAbbreviations() []struct {
	re        *regexp.Regexp
	expansion string
} {
	rules := make([]struct {
		re        *regexp.Regexp
		expansion string
	}, 0, len(abbreviationTable))

	for _, entry := range abbreviationTable {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(entry.Abbr))
		if err != nil {
			// Static table; a bad entry is a programming defect.
			panic(err)
		}
		rules = append(rules, struct {
			re        *regexp.Regexp
			expansion string
		}{re, entry.Expansion})
	}
	return rules
}

// ExpandAbbreviations replaces every table entry with its spoken
// expansion. Matching is case-insensitive and anchored at a word
// boundary; the trailing period of an abbreviation is consumed.
func ExpandAbbreviations(text string) string {
	for _, rule := range abbreviationRules {
		text = rule.re.ReplaceAllString(text, rule.expansion)
	}
	return text
}

// EndsWithAbbreviation reports whether s ends with one of the table's
// abbreviation tokens. The structural pause injector uses it to avoid
// tagging a period that does not end a sentence. The match must cover
// a whole token: "Uhr." ends with the letters of "Hr." but is an
// ordinary word, not an abbreviation.
func EndsWithAbbreviation(s string) bool {
	lower := strings.ToLower(strings.TrimRight(s, " \t"))
	for _, entry := range abbreviationTable {
		abbr := strings.ToLower(entry.Abbr)
		if !strings.HasSuffix(lower, abbr) {
			continue
		}
		if startsToken(lower[:len(lower)-len(abbr)]) {
			return true
		}
	}
	return false
}

// startsToken reports whether a token may begin right after prefix,
// that is at the start of the string or after a non-letter.
func startsToken(prefix string) bool {
	if prefix == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(prefix)
	return !unicode.IsLetter(r)
}
