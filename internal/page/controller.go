// internal/page/controller.go
//
// Formrelay – Contact page controller.
//
// Context
//   One submit trigger drives one flow: read the controls, validate, and on
//   success relay to the form processor, ending in exactly one terminal
//   notification.  The controller owns the ordering; the Surface owns the
//   pixels.
//
// Workflow
//   •  Validation failure: mark every failing field, scroll the first one
//      into view, stop.  Nothing touches the network.
//   •  Valid input: busy on, one Submit, busy off (deferred, runs on every
//      path).  Success clears the controls and field errors; failure leaves
//      them intact so the visitor can retry without retyping.
//   •  A submit that lands while one is in flight is suppressed, not queued.
//
//------------------------------------------------------------------------------

package page

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yanizio/formrelay/internal/contact"
	"github.com/yanizio/formrelay/internal/metrics"
	"github.com/yanizio/formrelay/internal/notify"
	"github.com/yanizio/formrelay/internal/relay"
)

// SuccessMessage is shown after the endpoint acknowledges a submission.
const SuccessMessage = "Thank you! Your message has been sent."

// Controller wires the contact page pieces together.  Construct once at
// startup with explicit collaborators; no package-level state.
type Controller struct {
	surface        Surface
	submitter      *relay.Submitter
	center         *notify.Center
	log            *zap.SugaredLogger
	headerOffsetPx int
}

// NewController returns a ready Controller.
func NewController(s Surface, sub *relay.Submitter, c *notify.Center, headerOffsetPx int, log *zap.SugaredLogger) *Controller {
	return &Controller{
		surface:        s,
		submitter:      sub,
		center:         c,
		log:            log,
		headerOffsetPx: headerOffsetPx,
	}
}

// HandleSubmit runs one user-initiated submit attempt end to end.
func (c *Controller) HandleSubmit(ctx context.Context) {
	in := contact.FromValues(c.surface.Values())

	// Each attempt starts clean: prior field marks and any visible banner
	// belong to the previous attempt.
	c.surface.ClearFieldErrors()
	c.center.Clear()

	res := contact.Validate(in)
	if !res.Valid {
		metrics.ValidationFailuresTotal.Inc()
		for _, field := range contact.FieldOrder {
			if msg, ok := res.FieldErrors[field]; ok {
				c.surface.MarkFieldError(field, msg)
			}
		}
		c.surface.ScrollTo(res.FirstError(), c.headerOffsetPx)
		return
	}

	c.surface.SetBusy(true)
	defer c.surface.SetBusy(false)

	out, err := c.submitter.Submit(ctx, in)
	if err != nil {
		if errors.Is(err, relay.ErrInFlight) {
			// Guard tripped: a prior attempt is still running.  Drop this
			// trigger; its submission will resolve on its own.
			c.log.Warnw("submit suppressed while in flight")
			return
		}
		c.log.Errorw("submit failed unexpectedly", "error", err)
		c.center.Show(notify.Notification{Kind: notify.KindError, Message: relay.FallbackMessage})
		return
	}

	if out.OK {
		c.surface.ClearFields()
		c.surface.ClearFieldErrors()
		c.center.Show(notify.Notification{Kind: notify.KindSuccess, Message: SuccessMessage})
		return
	}

	// Fields stay intact on failure.
	c.center.Show(notify.Notification{Kind: notify.KindError, Message: out.Message})
}
