package locale

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Resolver picks a request locale from a fixed list of supported locales.
type Resolver struct {
	Default   string
	Supported []string
}

func NewResolver(defaultLocale string, supported []string) *Resolver {
	return &Resolver{Default: defaultLocale, Supported: supported}
}

// Resolve returns the first supported locale found in, in order, the first
// path segment of referer and the Accept-Language header. It falls back to
// the default locale.
func (r *Resolver) Resolve(referer, acceptLanguage string) string {
	if loc := r.fromReferer(referer); loc != "" {
		return loc
	}
	if loc := r.fromAcceptLanguage(acceptLanguage); loc != "" {
		return loc
	}
	return r.Default
}

func (r *Resolver) IsSupported(loc string) bool {
	return slices.Contains(r.Supported, strings.ToLower(loc))
}

func (r *Resolver) fromReferer(referer string) string {
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil {
		return ""
	}
	for _, segment := range strings.Split(u.Path, "/") {
		if segment == "" {
			continue
		}
		if r.IsSupported(segment) {
			return strings.ToLower(segment)
		}
		return ""
	}
	return ""
}

func (r *Resolver) fromAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if r.IsSupported(base.String()) {
			return base.String()
		}
	}
	return ""
}
