package model

import (
	"net/url"
	"regexp"
)

// Field keys of an invitation request
const (
	FieldTeamName = "team_name"
	FieldEmail    = "email"
	FieldToken    = "token"
)

// Validation codes that are not derived from a missing field
const (
	CodeInvalidTeamName = "invalid_team_name"
)

// requiredFields is the fixed check order of Validate
var requiredFields = []string{FieldTeamName, FieldEmail, FieldToken}

// teamNamePattern matches one or more dot separated DNS labels, as in
// "acme" or "acme.enterprise". The team name is prefixed to the domain to
// form the remote host, so path, port, userinfo and fragment characters are
// rejected.
var teamNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`)

// Fields is the flat field mapping of one invitation request. Both the form
// body of a proxy event and a direct mapping are reduced to Fields.
type Fields map[string]string

// InjectToken force-writes the server-side token into the mapping. An empty
// token leaves the caller's value untouched.
func (f Fields) InjectToken(token string) {
	if token == "" {
		return
	}
	f[FieldToken] = token
}

// Validate returns the codes of all missing required fields in check order,
// followed by codes for present but malformed fields. An empty value counts
// as missing. The result is empty when the request is valid.
func (f Fields) Validate() []string {
	var codes []string
	for _, key := range requiredFields {
		if f[key] == "" {
			codes = append(codes, MissingFieldCode(key))
		}
	}

	if name := f[FieldTeamName]; name != "" && !teamNamePattern.MatchString(name) {
		codes = append(codes, CodeInvalidTeamName)
	}

	return codes
}

// TeamName returns the team the invitation is for
func (f Fields) TeamName() string {
	return f[FieldTeamName]
}

// Payload returns every field except team_name as a form body
func (f Fields) Payload() url.Values {
	values := url.Values{}
	for key, value := range f {
		if key == FieldTeamName {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// Keys returns field names only, for logging without leaking values
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	return keys
}

// MissingFieldCode formats the validation code of an absent field
func MissingFieldCode(key string) string {
	return "no_" + key
}
