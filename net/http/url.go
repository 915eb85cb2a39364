package http

import (
	"strings"
)

// Base returns everything up to and including the last path separator
// of the url.
func Base(url string) string {
	i := strings.LastIndexByte(url, '/')
	if i < 0 {
		return ""
	}
	return url[:i+1]
}

func schema(url string) string {
	l := len(url)
	if l > 6 {
		l = 6
	}
	s := strings.ToLower(url[:l])
	switch {
	case strings.HasPrefix(s, "https:"):
		return url[:len("https:")]
	case strings.HasPrefix(s, "http:"):
		return url[:len("http:")]
	}
	return ""
}

// IsAbs reports whether the url is absolute, either scheme qualified
// or rooted.
func IsAbs(url string) bool {
	if len(url) > 0 && url[0] == '.' {
		return false
	}
	if schema(url) != "" {
		return true
	}
	return len(url) > 0 && url[0] == '/'
}

// Rel returns the target resolved against the base url. An absolute
// target comes back unchanged.
func Rel(base, target string) string {
	if !IsAbs(target) {
		target = Base(base) + target
	}
	return target
}
