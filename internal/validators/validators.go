// Package validators holds stateless predicates for request validation.
package validators

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsHTTPURL accepts absolute http and https URLs.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// MaxLen counts runes, not bytes.
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

func InRange[T int | float64](v, min, max T) bool {
	return v >= min && v <= max
}
