// internal/relay/relay.go
//
// Formrelay – Submitter: guarded relay to the form-processing endpoint.
//
// Context
//   Accepted submissions are forwarded to a third-party form processor with a
//   single POST.  The Submitter owns the idle/submitting state machine: the
//   transition is a checked compare-and-swap, so a second Submit while one is
//   in flight can never produce two concurrent requests.  The state is
//   restored to idle on every exit path, including panics inside the
//   transport.
//
// Workflow
//   •  Submit CAS-es idle → submitting, or returns ErrInFlight.
//   •  One multipart POST, Accept: application/json, optional auth header.
//   •  2xx → Success.  Anything else, including transport failure, becomes a
//      Failure carrying one fixed user-facing message; the real status or
//      error is logged for operators only.
//   •  No retries.  A failed attempt needs a new user-initiated submit.
//
//------------------------------------------------------------------------------

package relay

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/formrelay/internal/contact"
	"github.com/yanizio/formrelay/internal/metrics"
)

// State is the submitter's two-valued submission state.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// ErrInFlight is returned when Submit is called while a prior call has not
// yet resolved.  Callers suppress the attempt; they must not queue it.
var ErrInFlight = errors.New("relay: a submission is already in flight")

// FallbackMessage is the only failure text ever shown to a visitor.  HTTP
// statuses and transport errors stay in the operator log so backend details
// never leak through the interface.
const FallbackMessage = "Sorry, something went wrong. Please try again later."

// Outcome is the terminal result of one submission attempt.
type Outcome struct {
	OK      bool
	Message string // FallbackMessage when OK is false, empty otherwise
}

// Options configures a Submitter.  Endpoint is required; the rest default to
// sane values.
type Options struct {
	Endpoint   string        // form-processor URL, fixed per deployment
	Timeout    time.Duration // per-request cap, 0 means transport default
	AuthHeader string        // optional operator-configured header name
	AuthValue  string        // value for AuthHeader, often Vault-resolved
}

// Submitter relays contact form input to the configured endpoint.  Safe for
// concurrent use; concurrent Submit calls beyond the first get ErrInFlight.
type Submitter struct {
	opts   Options
	client *http.Client
	log    *zap.SugaredLogger
	state  atomic.Int32
}

// New returns a Submitter in the idle state.
func New(opts Options, log *zap.SugaredLogger) *Submitter {
	return &Submitter{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    log,
	}
}

// State reports the current submission state.
func (s *Submitter) State() State {
	return State(s.state.Load())
}

// Submit forwards in to the endpoint and maps the response to an Outcome.
// It returns ErrInFlight without touching the network when another call is
// still running.
func (s *Submitter) Submit(ctx context.Context, in contact.Input) (Outcome, error) {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateSubmitting)) {
		s.log.Warnw("submit rejected, already in flight")
		return Outcome{}, ErrInFlight
	}
	metrics.SubmissionsInFlight.Inc()
	defer func() {
		s.state.Store(int32(StateIdle))
		metrics.SubmissionsInFlight.Dec()
	}()

	metrics.SubmissionsTotal.Inc()

	body, contentType, err := encodeMultipart(in)
	if err != nil {
		// Encoding a handful of strings cannot realistically fail, but the
		// failure path still maps to the generic outcome.
		s.log.Errorw("relay encode failed", "error", err)
		metrics.SubmissionFailuresTotal.Inc()
		return Outcome{Message: FallbackMessage}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.Endpoint, body)
	if err != nil {
		s.log.Errorw("relay request build failed", "endpoint", s.opts.Endpoint, "error", err)
		metrics.SubmissionFailuresTotal.Inc()
		return Outcome{Message: FallbackMessage}, nil
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if s.opts.AuthHeader != "" {
		req.Header.Set(s.opts.AuthHeader, s.opts.AuthValue)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Network error, timeout, or cancelled context.  Operators get the
		// detail; the visitor gets the fixed message.
		s.log.Errorw("relay request failed", "endpoint", s.opts.Endpoint, "error", err)
		metrics.SubmissionFailuresTotal.Inc()
		return Outcome{Message: FallbackMessage}, nil
	}
	defer resp.Body.Close()

	// Drain so the transport can reuse the connection.  The processor's JSON
	// acknowledgement carries no information we act on.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Errorw("relay endpoint rejected submission",
			"endpoint", s.opts.Endpoint, "status", resp.StatusCode)
		metrics.SubmissionFailuresTotal.Inc()
		return Outcome{Message: FallbackMessage}, nil
	}

	s.log.Infow("submission relayed", "status", resp.StatusCode)
	return Outcome{OK: true}, nil
}

// encodeMultipart renders the form fields the way a browser posts them.
func encodeMultipart(in contact.Input) (io.Reader, string, error) {
	var buf strings.Builder
	w := multipart.NewWriter(&buf)

	vals := in.Values()
	for _, field := range contact.FieldOrder {
		if err := w.WriteField(field, vals.Get(field)); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return strings.NewReader(buf.String()), w.FormDataContentType(), nil
}
