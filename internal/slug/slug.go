// Package slug builds URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const MaxLength = 255

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	separatorRuns = regexp.MustCompile(`[\s-]+`)
	validSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate lowercases s, strips accents and punctuation, and joins words
// with single hyphens.
func Generate(s string) string {
	s = stripAccents(strings.ToLower(strings.TrimSpace(s)))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLength {
		s = strings.TrimRight(s[:MaxLength], "-")
	}
	return s
}

// Normalize turns user-supplied slugs into canonical form.
func Normalize(s string) string {
	return Generate(s)
}

func IsValid(s string) bool {
	return s != "" && len(s) <= MaxLength && validSlug.MatchString(s)
}

// GenerateUnique appends -2, -3, ... to base until taken reports false.
func GenerateUnique(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

func stripAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
