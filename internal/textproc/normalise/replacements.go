package normalise

import (
	"regexp"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/logger"
)

// ApplyReplacements applies the user-defined rules in order. Search
// strings are escaped as literals (never interpreted as patterns) and
// replaced globally, case-insensitively. A rule that fails to compile
// is skipped with a warning; the run never aborts here.
func ApplyReplacements(text string, rules []domain.ReplacementRule) string {
	for _, rule := range rules {
		if rule.Search == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(rule.Search))
		if err != nil {
			logger.Warn("skipping replacement rule %q: %v", rule.Search, err)
			continue
		}
		text = re.ReplaceAllLiteralString(text, rule.Replace)
	}
	return text
}
