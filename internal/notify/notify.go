// internal/notify/notify.go
//
// Formrelay – Notification surface.
//
// Context
//   One global banner reports the terminal result of a submission attempt.
//   At most one notification exists at a time; showing a new one supersedes
//   the current one rather than queuing behind it.  The Center owns that
//   single-slot rule; a Presenter does the actual rendering, so tests run
//   against a recording fake.
//
//------------------------------------------------------------------------------

package notify

import "sync"

// Kind classifies a notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// String implements fmt.Stringer so kinds read well in logs and templates.
func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is the single global banner.
type Notification struct {
	Kind    Kind
	Message string
}

// Presenter renders notification state onto the page surface.  Show also
// brings the banner into view, offset above the fixed header so the header
// does not obscure it.
type Presenter interface {
	Present(n Notification, headerOffsetPx int)
	Dismiss()
}

// Center enforces the one-banner rule.  Safe for concurrent use, although
// the page controller serializes access in practice.
type Center struct {
	presenter      Presenter
	headerOffsetPx int

	mu      sync.Mutex
	current *Notification
}

// NewCenter returns a Center that renders through p with the given fixed
// header offset.
func NewCenter(p Presenter, headerOffsetPx int) *Center {
	return &Center{presenter: p, headerOffsetPx: headerOffsetPx}
}

// Show replaces any current notification with n and presents it.
func (c *Center) Show(n Notification) {
	c.mu.Lock()
	c.current = &n
	c.mu.Unlock()
	c.presenter.Present(n, c.headerOffsetPx)
}

// Clear removes the current notification, if any.
func (c *Center) Clear() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
	c.presenter.Dismiss()
}

// Current returns the visible notification, or nil when the slot is empty.
func (c *Center) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	n := *c.current
	return &n
}
