package common

import "regexp"

// CompileSearch compiles a user-entered search term. Literal terms are escaped
// so that characters like "(" or "+" match themselves.
func CompileSearch(term string, caseSensitive, literal bool) (*regexp.Regexp, error) {
	pattern := term
	if literal {
		pattern = regexp.QuoteMeta(term)
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}
