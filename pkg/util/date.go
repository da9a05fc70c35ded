// Package util holds small formatting helpers shared by commands.
package util

import (
	"fmt"
	"strings"
	"time"
)

// dateReplacements maps template placeholders to Go reference-time tokens.
var dateReplacements = [][2]string{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"hh", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// FormatDateTpl formats t using a template with YYYY/MM/DD/hh/mm/ss
// placeholders, e.g. "DD.MM.YYYY hh:mm". A zero time yields an empty string.
func FormatDateTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	goTpl := tpl
	for _, r := range dateReplacements {
		goTpl = strings.ReplaceAll(goTpl, r[0], r[1])
	}
	return t.Format(goTpl)
}

// HumanDuration renders a duration in the largest sensible unit, for
// user-facing cooldown messages: "45s", "3m", "2h".
func HumanDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "less than a second"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Round(time.Second).Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Round(time.Minute).Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Round(time.Hour).Hours()))
	}
}
