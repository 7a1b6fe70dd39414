package configurator

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName returns the label for part: the mapped name when one exists,
// otherwise the identifier with underscores turned into spaces and every
// word capitalized ("shell_bottom" becomes "Shell Bottom").
func DisplayName(names map[string]string, part string) string {
	if label, ok := names[part]; ok && label != "" {
		return label
	}
	return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(part, "_", " "))
}
