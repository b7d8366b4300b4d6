package accounts

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

var digitRegexp = regexp.MustCompile(`\d`)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

//FieldRule is a single declarative check against one body field.
// A rule with a nil Check is skipped, so a broken rule definition degrades
// to "not enforced" instead of failing the request.
type FieldRule struct {
	Field   string
	Check   func(string) bool
	Message string
}

var EmailRules = []FieldRule{
	{Field: "email", Check: isEmail, Message: "Invalid email format"},
}

var CredentialRules = append(EmailRules, passwordRules("password")...)

var PasswordChangeRules = append(append(EmailRules,
	passwordRules("oldPassword")...),
	passwordRules("newPassword")...)

func passwordRules(field string) []FieldRule {
	return []FieldRule{
		{Field: field, Check: isLongEnough, Message: "Password must be at least 8 characters"},
		{Field: field, Check: digitRegexp.MatchString, Message: "Password must contain a number"},
		{Field: field, Check: containsSymbol, Message: "Password must contain a special character"},
	}
}

func isEmail(s string) bool {
	return emailRegexp.MatchString(s)
}

func isLongEnough(s string) bool {
	return len(s) >= 8
}

func containsSymbol(s string) bool {
	return strings.ContainsAny(s, passwordSymbols)
}

//CheckFields evaluates rules against the body fields in declared order
// and returns one {field: message} entry per failing rule.
func CheckFields(rules []FieldRule, fields map[string]string) []map[string]string {
	var failures []map[string]string
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if !rule.Check(fields[rule.Field]) {
			failures = append(failures, map[string]string{rule.Field: rule.Message})
		}
	}
	return failures
}

//ValidateBody runs a rule set against the JSON request body before the
// next handler sees it. A failing field terminates the request with a 400
// listing every failure; the body is re-buffered for downstream readers.
func ValidateBody(rules []FieldRule, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := peekBody(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fields := map[string]string{}
		if err := json.Unmarshal(body, &fields); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if failures := CheckFields(rules, fields); len(failures) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"errors": failures})
			return
		}

		next.ServeHTTP(w, r)
	})
}
