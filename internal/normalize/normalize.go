// Package normalize repairs free-text fields damaged by the legacy spreadsheet export.
//
// The export lost accented characters in two ways: the word "ÀS" collapsed to a
// bare "S", and other accented letters were written as a single placeholder
// character. Text undoes both for the known vocabulary of the roster sheet. It is
// not a general encoding repair and must stay idempotent.
package normalize

import (
	"regexp"
	"strings"

	"github.com/qlpapp/qlp-server/internal/domain"
)

// placeholders are the characters the export wrote in place of an accented letter.
const placeholders = "?.\uFFFD"

type replacement struct {
	pattern *regexp.Regexp
	fixed   string
}

// dictionary maps corrupted uppercase tokens to their accented spelling.
// A "." in a pattern stands for the single lost character.
//
//nolint:gochecknoglobals // Static lookup table of known corrupted tokens
var dictionary = []replacement{
	{regexp.MustCompile(`COMPET.NCIAS`), "COMPETÊNCIAS"},
	{regexp.MustCompile(`SEGURAN.A`), "SEGURANÇA"},
	{regexp.MustCompile(`CONFIAN.A`), "CONFIANÇA"},
	{regexp.MustCompile(`AN.LISE`), "ANÁLISE"},
	{regexp.MustCompile(`ANAL.TICA`), "ANALÍTICA"},
	{regexp.MustCompile(`DECIS.ES`), "DECISÕES"},
	{regexp.MustCompile(`PRIORIZA..O`), "PRIORIZAÇÃO"},
	{regexp.MustCompile(`REUNI.ES`), "REUNIÕES"},
	{regexp.MustCompile(`COMUNICA..O`), "COMUNICAÇÃO"},
}

//nolint:gochecknoglobals // Compiled once
var (
	negationPattern = regexp.MustCompile(`N.O `)
	ordinalPattern  = regexp.MustCompile(`(\d)\.`)
)

// Text repairs a single field value. Empty input is returned unchanged.
//
// Rules, in order:
//  1. " S " becomes " ÀS ".
//  2. Only when a placeholder character is present:
//     a. known corrupted tokens are replaced from the dictionary;
//     b. a standalone "N?O" followed by a space becomes "NÃO";
//     c. every "<digit>." becomes "<digit>°".
func Text(s string) string {
	if s == "" {
		return s
	}

	// Adjacent tokens share a space, so one pass can leave " S " behind.
	for strings.Contains(s, " S ") {
		s = strings.ReplaceAll(s, " S ", " ÀS ")
	}

	if !strings.ContainsAny(s, placeholders) {
		return s
	}

	for _, r := range dictionary {
		if r.pattern.MatchString(s) {
			s = r.pattern.ReplaceAllString(s, r.fixed)
		}
	}

	s = repairNegation(s)

	return ordinalPattern.ReplaceAllString(s, "${1}°")
}

// repairNegation rewrites "N?O " when it starts the string or follows a space.
// The leading boundary is checked by hand so consecutive matches, which share
// a space, are all found.
func repairNegation(s string) string {
	matches := negationPattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(matches))
	last := 0
	for _, m := range matches {
		if m[0] > 0 && s[m[0]-1] != ' ' {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString("NÃO ")
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// Value applies Text to strings and returns every other value untouched,
// including nil. It is meant for loosely typed rows such as CSV imports.
func Value(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return Text(s)
}

// Fields repairs the named keys of a raw row in place and reports how many
// values changed. Missing keys and non-string values are skipped.
func Fields(row map[string]any, keys ...string) int {
	changed := 0
	for _, k := range keys {
		v, ok := row[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if fixed := Text(s); fixed != s {
			row[k] = fixed
			changed++
		}
	}
	return changed
}

// Employee returns a copy of e with every free-text field repaired, along
// with the number of fields that changed. Status, CPF and the protected-class
// flag are codes and are left as stored.
func Employee(e domain.Employee) (domain.Employee, int) {
	changed := 0
	fix := func(s *string) {
		if fixed := Text(*s); fixed != *s {
			*s = fixed
			changed++
		}
	}

	fix(&e.Name)
	fix(&e.Area)
	fix(&e.Leader)
	fix(&e.Shift)
	fix(&e.Education)
	fix(&e.CurrentTitle)
	for i := range e.Actions {
		fix(&e.Actions[i].Competency)
		fix(&e.Actions[i].Status)
		fix(&e.Actions[i].Description)
	}

	return e, changed
}
