// internal/relay/relay_test.go
//
// Unit-tests for the Submitter.
//
// Context
// -------
// The relay is exercised against httptest servers: a 200 responder for the
// success path, a 500 responder for the rejected path, and a closed listener
// for the transport-failure path.  One test holds a request open with a gate
// channel to prove the in-flight guard rejects a concurrent Submit.
//
//------------------------------------------------------------------------------

package relay

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/formrelay/internal/contact"
)

func testInput() contact.Input {
	return contact.Input{
		Name:    "Ana",
		Company: "Acme",
		Email:   "ana@example.com",
		Phone:   "555-0100",
		Message: "Hello, I would like a quote.",
	}
}

func TestSubmit_Success(t *testing.T) {
	var gotAccept, gotContentType string
	var gotFields map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotFields = map[string]string{}
		for k := range r.MultipartForm.Value {
			gotFields[k] = r.FormValue(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	s := New(Options{Endpoint: srv.URL}, zap.NewNop().Sugar())

	out, err := s.Submit(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if !out.OK || out.Message != "" {
		t.Fatalf("outcome = %+v, want success", out)
	}
	if s.State() != StateIdle {
		t.Fatalf("state after success = %v, want idle", s.State())
	}

	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if mt, _, _ := mime.ParseMediaType(gotContentType); mt != "multipart/form-data" {
		t.Errorf("Content-Type = %q, want multipart/form-data", gotContentType)
	}
	for _, field := range contact.FieldOrder {
		if _, ok := gotFields[field]; !ok {
			t.Errorf("field %q missing from relayed body", field)
		}
	}
	if gotFields["email"] != "ana@example.com" {
		t.Errorf("relayed email = %q", gotFields["email"])
	}
}

func TestSubmit_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(Options{Endpoint: srv.URL}, zap.NewNop().Sugar())

	out, err := s.Submit(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if out.OK {
		t.Fatal("outcome OK on 500 response")
	}
	if out.Message != FallbackMessage {
		t.Fatalf("Message = %q, want the fixed fallback", out.Message)
	}
	if strings.Contains(out.Message, "500") || strings.Contains(out.Message, "exploded") {
		t.Fatalf("backend detail leaked into user message: %q", out.Message)
	}
	if s.State() != StateIdle {
		t.Fatalf("state after failure = %v, want idle", s.State())
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	// A server that is already closed yields a connection error.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := New(Options{Endpoint: url, Timeout: 2 * time.Second}, zap.NewNop().Sugar())

	out, err := s.Submit(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if out.OK || out.Message != FallbackMessage {
		t.Fatalf("outcome = %+v, want fallback failure", out)
	}
	if s.State() != StateIdle {
		t.Fatalf("state after transport failure = %v, want idle", s.State())
	}
}

func TestSubmit_AuthHeaderForwarded(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Relay-Key")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := New(Options{Endpoint: srv.URL, AuthHeader: "X-Relay-Key", AuthValue: "s3cret"}, zap.NewNop().Sugar())

	if _, err := s.Submit(context.Background(), testInput()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if got != "s3cret" {
		t.Fatalf("auth header = %q, want s3cret", got)
	}
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	entered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-gate
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := New(Options{Endpoint: srv.URL}, zap.NewNop().Sugar())

	done := make(chan Outcome, 1)
	go func() {
		out, _ := s.Submit(context.Background(), testInput())
		done <- out
	}()

	<-entered
	if s.State() != StateSubmitting {
		t.Fatalf("state during flight = %v, want submitting", s.State())
	}

	// Second submit while the first is parked inside the handler.
	_, err := s.Submit(context.Background(), testInput())
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("second Submit error = %v, want ErrInFlight", err)
	}

	close(gate)
	out := <-done
	if !out.OK {
		t.Fatalf("first submission outcome = %+v, want success", out)
	}
	if s.State() != StateIdle {
		t.Fatalf("state after completion = %v, want idle", s.State())
	}
}
