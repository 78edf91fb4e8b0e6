// internal/contact/validate.go
//
// Formrelay – Contact form validation.
//
// Context
//   Validate is a pure function: raw field values in, pass/fail plus per-field
//   messages out.  No I/O, no hidden state, so two calls on the same Input
//   always agree.  Each call starts from a clean slate; results are never
//   merged with a previous attempt.
//
// Workflow
//   •  Every rule set runs on every call.  A failure in one field never
//      short-circuits the others, so the page can mark all problems at once.
//   •  Within one field the required check precedes the length or format
//      check, and only the first failing rule contributes a message.
//
//------------------------------------------------------------------------------

package contact

import (
	"regexp"
	"unicode/utf8"
)

// User-facing field error messages.  Inline, recoverable, never exceptions.
const (
	MsgRequired     = "This field is required."
	MsgNameShort    = "Please enter at least 2 characters."
	MsgEmailInvalid = "Please enter a valid email address."
	MsgMessageShort = "Please enter at least 10 characters."
)

// Minimum lengths for the validated fields, counted in characters, not
// bytes, so multibyte names and messages measure the way a visitor reads
// them.
const (
	minNameLen    = 2
	minMessageLen = 10
)

// emailPattern is a deliberately permissive syntactic check: something before
// the "@", something after it, and a dot somewhere in the domain part.  Full
// RFC address parsing rejects real-world addresses we want to accept, so we
// do not use net/mail here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s]+$`)

// Result is the outcome of one validation pass.  FieldErrors holds exactly
// one message per failing field; an absent key means the field passed.
type Result struct {
	Valid       bool
	FieldErrors map[string]string
}

// Validate applies the contact form rules to in and reports every failing
// field.  Company and Phone are optional and always pass.
func Validate(in Input) Result {
	errs := make(map[string]string)

	switch {
	case in.Name == "":
		errs[FieldName] = MsgRequired
	case utf8.RuneCountInString(in.Name) < minNameLen:
		errs[FieldName] = MsgNameShort
	}

	switch {
	case in.Email == "":
		errs[FieldEmail] = MsgRequired
	case !emailPattern.MatchString(in.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case in.Message == "":
		errs[FieldMessage] = MsgRequired
	case utf8.RuneCountInString(in.Message) < minMessageLen:
		errs[FieldMessage] = MsgMessageShort
	}

	return Result{Valid: len(errs) == 0, FieldErrors: errs}
}

// FirstError returns the name of the first failing field in form order, or
// "" when r is valid.  The page scrolls this field into view.
func (r Result) FirstError() string {
	for _, f := range FieldOrder {
		if _, ok := r.FieldErrors[f]; ok {
			return f
		}
	}
	return ""
}
