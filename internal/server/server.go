// internal/server/server.go
//
// Formrelay – HTTP delivery.
//
// Context
//   Three routes matter: GET / renders the contact page, POST /contact runs
//   one submit attempt through the page controller and re-renders, and
//   /metrics exposes the Prometheus registry.  The controller and its
//   collaborators are built per request around a shared Submitter, so the
//   in-flight guard spans the whole process, not one connection.
//
// Workflow
//   •  POST parses the form, checks the CSRF token, then hands the posted
//      values to the controller via an httpSurface.
//   •  The rendered response is the surface read back out: field errors,
//      remaining values, banner, and scroll target.
//   •  The journal row is derived from the surface after the flow finishes;
//      a submit suppressed by the in-flight guard records nothing.
//
//------------------------------------------------------------------------------

package server

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/formrelay/internal/config"
	"github.com/yanizio/formrelay/internal/contact"
	"github.com/yanizio/formrelay/internal/journal"
	"github.com/yanizio/formrelay/internal/middleware"
	"github.com/yanizio/formrelay/internal/notify"
	"github.com/yanizio/formrelay/internal/page"
	"github.com/yanizio/formrelay/internal/relay"
	"github.com/yanizio/formrelay/internal/requestinfo"
)

// csrfFailureMessage is form-level, not field-level: the input was never
// looked at.
const csrfFailureMessage = "Security token invalid. Please refresh and try again."

//go:embed templates/contact.html static/app.js
var assetFS embed.FS

var pageTmpl = template.Must(template.ParseFS(assetFS, "templates/contact.html"))

// Server wires the contact page flow behind chi.
type Server struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	submitter *relay.Submitter
	journal   *journal.Journal
	resolver  *requestinfo.Resolver
	form      *page.FormDef
}

// New returns a ready Server.  journal may be nil (persistence disabled).
func New(cfg *config.Config, log *zap.SugaredLogger, sub *relay.Submitter,
	j *journal.Journal, res *requestinfo.Resolver, form *page.FormDef) *Server {
	return &Server{
		cfg:       cfg,
		log:       log,
		submitter: sub,
		journal:   j,
		resolver:  res,
		form:      form,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Security)

	r.Get("/", s.handleIndex)
	r.Post("/contact", s.handleSubmit)
	// The page script ships as a real asset so the self-only CSP covers it;
	// inline script blocks would be refused by the policy.
	r.Handle("/static/*", http.FileServer(http.FS(assetFS)))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

//
// Handlers
//

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, newHTTPSurface(url.Values{}))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form body", http.StatusBadRequest)
		return
	}

	offset := s.cfg.Page.HeaderOffsetPx

	if !checkToken(r.PostForm.Get("csrf_token")) {
		surf := newHTTPSurface(r.PostForm)
		surf.Present(notify.Notification{Kind: notify.KindError, Message: csrfFailureMessage}, offset)
		s.render(w, http.StatusForbidden, surf)
		return
	}

	surf := newHTTPSurface(r.PostForm)
	center := notify.NewCenter(surf, offset)
	ctrl := page.NewController(surf, s.submitter, center, offset, s.log)

	ctrl.HandleSubmit(r.Context())

	if outcome := classifyOutcome(surf); outcome != "" {
		s.journal.Record(r.Context(), contact.FromValues(r.PostForm), outcome, s.resolver.FromRequest(r))
	}

	s.render(w, http.StatusOK, surf)
}

// classifyOutcome maps the post-flow surface state to a journal label.  An
// empty label means the attempt was suppressed by the in-flight guard and
// nothing is recorded.
func classifyOutcome(surf *httpSurface) string {
	switch {
	case len(surf.fieldErrors) > 0:
		return journal.OutcomeRejected
	case surf.notice != nil && surf.notice.Kind == notify.KindSuccess:
		return journal.OutcomeAccepted
	case surf.notice != nil:
		return journal.OutcomeFailed
	default:
		return ""
	}
}

//
// Rendering
//

// pageData is the template's view of one request.
type pageData struct {
	Form           *page.FormDef
	Values         url.Values
	FieldErrors    map[string]string
	Notice         *notify.Notification
	ScrollAnchor   string
	HeaderOffsetPx int
	CSRFToken      string
}

func (s *Server) render(w http.ResponseWriter, status int, surf *httpSurface) {
	token, err := newToken()
	if err != nil {
		s.log.Errorw("csrf token generation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Form:           s.form,
		Values:         surf.values,
		FieldErrors:    surf.fieldErrors,
		Notice:         surf.notice,
		ScrollAnchor:   surf.scrollAnchor,
		HeaderOffsetPx: s.cfg.Page.HeaderOffsetPx,
		CSRFToken:      token,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.Errorw("page render failed", "error", err)
	}
}
