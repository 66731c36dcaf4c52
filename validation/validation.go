// Package validation runs declarative per-field rules against JSON request
// bodies before a handler executes.
//
// A rule is a (field, predicate, message) triple. The predicate is a
// go-playground/validator tag, so the usual vocabulary is available:
//
//	rules := validation.RuleSet{
//	    {Field: "Username", Check: "min=3", Message: "Username must be at least 3 characters long."},
//	    {Field: "Email", Check: "email", Message: "Email does not appear to be valid."},
//	}
//
// Every rule is evaluated; all violations are reported together.
package validation

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/user/movieapi-go/apperror"
)

// DateLayout is the accepted format for date fields such as Birthday.
const DateLayout = "2006-01-02"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Violation is one failed rule.
type Violation = apperror.FieldViolation

// Rule checks one field of the body.
type Rule struct {
	Field   string
	Check   string // validator tag, e.g. "required", "min=8", "alphanum", "email"
	Message string
	// Optional skips the rule when the field is absent from the body (or null).
	Optional bool
}

// RuleSet is the validation contract of one route.
type RuleSet []Rule

// Validate evaluates every rule against body and returns all violations.
// Non-string values are checked in their string form.
func (rs RuleSet) Validate(body map[string]interface{}) []Violation {
	v := GetValidator()
	var violations []Violation
	for _, rule := range rs {
		raw, present := body[rule.Field]
		if raw == nil {
			present = false
		}
		if !present && rule.Optional {
			continue
		}

		value := ""
		if present {
			if s, ok := raw.(string); ok {
				value = s
			} else {
				value = fmt.Sprint(raw)
			}
		}

		if err := v.Var(value, rule.Check); err != nil {
			violation := Violation{Field: rule.Field, Msg: rule.Message}
			if present && !isSecret(rule.Field) {
				violation.Value = raw
			}
			violations = append(violations, violation)
		}
	}
	return violations
}

// isSecret keeps password values out of 422 responses.
func isSecret(field string) bool {
	switch field {
	case "Password", "CurrentPassword":
		return true
	}
	return false
}

// Requires applies Rule only when Trigger is present in the body,
// e.g. CurrentPassword is required only when Password is being changed.
type Requires struct {
	Trigger string
	Rule    Rule
}
