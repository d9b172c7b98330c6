package funcs

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var TemplateFuncs = map[string]any{
	"title":      titleCase,
	"upper":      strings.ToUpper,
	"lower":      strings.ToLower,
	"formatTime": formatTime,
	"humanKind":  humanKind,
}

func titleCase(s string) string {
	// a Caser keeps state, so one is created per call
	return cases.Title(language.English).String(s)
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

// humanKind turns an entity kind such as "OPPORTUNITY" into "Opportunity".
func humanKind(kind string) string {
	return titleCase(strings.ToLower(strings.ReplaceAll(kind, "_", " ")))
}
