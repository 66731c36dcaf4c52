package validation

// Route contracts. Each route owns its rule set; they intentionally differ
// (registration requires fields that an update treats as optional).

// CreateUserRules guards POST /users.
var CreateUserRules = RuleSet{
	{Field: "Username", Check: "required", Message: "Username is required."},
	{Field: "Username", Check: "min=3", Message: "Username must be at least 3 characters long."},
	{Field: "Username", Check: "alphanum", Message: "Username contains non alphanumeric characters - not allowed."},
	{Field: "Password", Check: "required", Message: "Password is required."},
	{Field: "Password", Check: "min=8", Message: "Password must be at least 8 characters long."},
	{Field: "Email", Check: "email", Message: "Email does not appear to be valid."},
	{Field: "Birthday", Check: "datetime=" + DateLayout, Message: "Birthday must be a date in YYYY-MM-DD format.", Optional: true},
}

// UpdateUserRules guards PUT /users/{userID}. Every field is optional, but
// present fields follow the registration predicates.
var UpdateUserRules = RuleSet{
	{Field: "Username", Check: "min=3", Message: "Username must be at least 3 characters long.", Optional: true},
	{Field: "Username", Check: "alphanum", Message: "Username contains non alphanumeric characters - not allowed.", Optional: true},
	{Field: "Password", Check: "min=8", Message: "Password must be at least 8 characters long.", Optional: true},
	{Field: "Email", Check: "email", Message: "Email does not appear to be valid.", Optional: true},
	{Field: "Birthday", Check: "datetime=" + DateLayout, Message: "Birthday must be a date in YYYY-MM-DD format.", Optional: true},
}

// UpdateUserConditionalRules: changing the password requires the current one.
var UpdateUserConditionalRules = []Requires{
	{Trigger: "Password", Rule: Rule{Field: "CurrentPassword", Check: "required", Message: "Current password is required to set a new password."}},
}
