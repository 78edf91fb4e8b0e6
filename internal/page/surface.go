// internal/page/surface.go
//
// Formrelay – Rendered-surface contract.
//
// Context
//   The controller never touches ambient page state.  Everything it reads or
//   writes goes through this interface, constructed at startup and injected,
//   so the submission flow is testable against a fake with no rendering
//   environment at all.
//
//------------------------------------------------------------------------------

package page

import "net/url"

// Surface is the rendered contact form as the controller sees it.  The HTTP
// layer implements it over the request/response pair; tests implement it as
// an in-memory fake.
type Surface interface {
	// Values returns the current control values, one entry per form field.
	Values() url.Values

	// MarkFieldError attaches an inline message beside the named field.
	MarkFieldError(name, msg string)

	// ClearFieldErrors removes every inline field message.
	ClearFieldErrors()

	// ClearFields empties all form controls after a successful submission.
	ClearFields()

	// SetBusy disables or re-enables the submit trigger.  Busy is the visual
	// side of the in-flight guard; the checked state lives in the Submitter.
	SetBusy(busy bool)

	// ScrollTo brings the named field's control into view, offset above the
	// fixed header so the header does not obscure it.
	ScrollTo(field string, offsetPx int)
}
