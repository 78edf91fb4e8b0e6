// internal/server/surface.go
//
// HTTP-backed implementation of the page Surface.
//
// Context
//   Each POST gets its own surface: the posted values come in, the
//   controller mutates the surface, and the render step reads the final
//   state back out into the template.  The same struct doubles as the
//   notify.Presenter, so the banner and the scroll target land in one place.
//
//------------------------------------------------------------------------------

package server

import (
	"net/url"

	"github.com/yanizio/formrelay/internal/notify"
)

// noticeAnchor is the id of the banner element in the template.
const noticeAnchor = "notice"

// httpSurface holds the form state for one request/response cycle.
type httpSurface struct {
	values      url.Values
	fieldErrors map[string]string
	busy        bool

	scrollAnchor string
	scrollOffset int

	notice *notify.Notification
}

func newHTTPSurface(values url.Values) *httpSurface {
	return &httpSurface{
		values:      values,
		fieldErrors: map[string]string{},
	}
}

//
// page.Surface
//

func (s *httpSurface) Values() url.Values { return s.values }

func (s *httpSurface) MarkFieldError(name, msg string) { s.fieldErrors[name] = msg }

func (s *httpSurface) ClearFieldErrors() { s.fieldErrors = map[string]string{} }

func (s *httpSurface) ClearFields() { s.values = url.Values{} }

func (s *httpSurface) SetBusy(busy bool) { s.busy = busy }

func (s *httpSurface) ScrollTo(field string, offsetPx int) {
	// Field wrappers are anchored as "field-<name>" in the template.
	s.scrollAnchor = "field-" + field
	s.scrollOffset = offsetPx
}

//
// notify.Presenter
//

func (s *httpSurface) Present(n notify.Notification, headerOffsetPx int) {
	s.notice = &n
	// The banner supersedes any field scroll target.
	s.scrollAnchor = noticeAnchor
	s.scrollOffset = headerOffsetPx
}

func (s *httpSurface) Dismiss() { s.notice = nil }
