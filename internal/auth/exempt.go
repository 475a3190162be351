package auth

import "regexp"

// PathRule exempts requests from authentication. Either Pattern or Path is
// set: Pattern matches anywhere in the request path (mirroring the
// original deployment's prefix regexes), Path must match exactly. Methods
// lists the HTTP methods the exemption applies to.
type PathRule struct {
	Pattern *regexp.Regexp
	Path    string
	Methods []string
}

func (r PathRule) matches(method, path string) bool {
	if !r.allowsMethod(method) {
		return false
	}
	if r.Pattern != nil {
		return r.Pattern.MatchString(path)
	}
	return r.Path == path
}

func (r PathRule) allowsMethod(method string) bool {
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Exemptions is the static rule table consulted before any credential check.
// It is built once at startup and never mutated.
type Exemptions struct {
	rules []PathRule
}

func NewExemptions(rules []PathRule) *Exemptions {
	return &Exemptions{rules: rules}
}

// DefaultExemptions reproduces the deployed rule table: anonymous reads on
// uploads, products and categories, plus the two account entry points.
func DefaultExemptions(apiURL string) *Exemptions {
	readOnly := []string{"GET", "OPTIONS"}
	return NewExemptions([]PathRule{
		{Pattern: regexp.MustCompile(`/public/uploads(.*)`), Methods: readOnly},
		{Pattern: regexp.MustCompile(regexp.QuoteMeta(apiURL) + `/products(.*)`), Methods: readOnly},
		{Pattern: regexp.MustCompile(regexp.QuoteMeta(apiURL) + `/categories(.*)`), Methods: readOnly},
		{Path: apiURL + "/users/login", Methods: []string{"POST"}},
		{Path: apiURL + "/users/register", Methods: []string{"POST"}},
	})
}

// Exempt reports whether (method, path) may skip authentication. Any single
// matching rule exempts the request.
func (e *Exemptions) Exempt(method, path string) bool {
	for _, r := range e.rules {
		if r.matches(method, path) {
			return true
		}
	}
	return false
}
