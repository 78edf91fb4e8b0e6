// internal/contact/input.go
//
// Formrelay – Contact form input.
//
// Context
//   Every submit attempt builds a fresh Input from the posted control values.
//   Nothing persists across attempts.  Trimming happens here, once, so the
//   validator and the relay both see canonical values.
//
//------------------------------------------------------------------------------

package contact

import (
	"net/url"
	"strings"
)

// Field names as they appear on the form and on the wire.
const (
	FieldName    = "name"
	FieldCompany = "company"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

// FieldOrder is the canonical top-to-bottom order of the form controls.  The
// page controller uses it to locate the first failing field for the scroll
// target.
var FieldOrder = []string{FieldName, FieldCompany, FieldEmail, FieldPhone, FieldMessage}

// Input is the transient value object for one submit attempt.  Name, Email,
// and Message are validated; Company and Phone pass through untouched.
type Input struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Message string
}

// FromValues builds an Input from posted form values.  All fields are trimmed
// of leading and trailing whitespace before any rule runs.
func FromValues(v url.Values) Input {
	return Input{
		Name:    strings.TrimSpace(v.Get(FieldName)),
		Company: strings.TrimSpace(v.Get(FieldCompany)),
		Email:   strings.TrimSpace(v.Get(FieldEmail)),
		Phone:   strings.TrimSpace(v.Get(FieldPhone)),
		Message: strings.TrimSpace(v.Get(FieldMessage)),
	}
}

// Values renders the Input back into url.Values in wire order.  Used by the
// relay to build the outbound body and by the journal for its JSON snapshot.
func (in Input) Values() url.Values {
	return url.Values{
		FieldName:    {in.Name},
		FieldCompany: {in.Company},
		FieldEmail:   {in.Email},
		FieldPhone:   {in.Phone},
		FieldMessage: {in.Message},
	}
}
