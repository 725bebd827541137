// util/project.go

package util

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

var urlValidate = validator.New()

// ProjectFromField gets the project ID from the raw form field.
//
// If the supplied value looks like a URL, the project ID is taken from its
// "project" query parameter; when the parameter is absent the empty string
// is returned to signal that no project ID could be found. Anything that
// does not look like a URL is passed through as-is, leaving it to the
// policy store to reject identifiers that do not name a real project.
//
// The result is query-encoded either way, so it is safe to embed in a
// downstream API call.
func ProjectFromField(value string) string {
	if err := urlValidate.Var(value, "url"); err == nil {
		u, err := url.Parse(value)
		if err != nil {
			return ""
		}
		if project := u.Query().Get("project"); project != "" {
			return url.QueryEscape(project)
		}
		return ""
	}
	return url.QueryEscape(value)
}
