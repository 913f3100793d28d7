package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/internal/simulation"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/observability"
	"github.com/aretw0/kinetic/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const maxBodyBytes = 1 << 20

// Server previews compiled timelines over HTTP. It never touches a live element: wildcard
// values are supplied by the caller.
type Server struct {
	Registry *registry.Registry
	Gatherer prometheus.Gatherer
	Hooks    domain.LifecycleHooks
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithGatherer exposes the metrics of g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLifecycleHooks observes the engines built for simulations.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler. Triggers named in requests are looked up in reg
// unless the request carries its own definitions.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{Registry: reg}
	for _, opt := range opts {
		opt(s)
	}
	if s.Registry == nil {
		s.Registry = registry.NewRegistry()
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/triggers", s.ListTriggers)
		r.Get("/triggers/{name}", s.GetTrigger)
		r.Post("/compile", s.Compile)
		r.Post("/sample", s.Sample)
		r.Post("/simulate", s.Simulate)
	})
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", observability.Handler(s.Gatherer))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CompileRequest names a state change and the values of its wildcards.
type CompileRequest struct {
	// Definitions optionally carries a YAML or JSON definitions document.
	Definitions string            `json:"definitions,omitempty"`
	Trigger     string            `json:"trigger"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Pre         map[string]string `json:"pre,omitempty"`
	Post        map[string]string `json:"post,omitempty"`
}

// CompileResponse is a resolved timeline in the Web Animations keyframe shape.
type CompileResponse struct {
	Trigger    string           `json:"trigger"`
	Expr       string           `json:"expr"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	DurationMs float64          `json:"duration_ms"`
	Keyframes  []map[string]any `json:"keyframes"`
	Unresolved []string         `json:"unresolved,omitempty"`
}

// SampleRequest is a CompileRequest plus the positions to sample.
type SampleRequest struct {
	CompileRequest
	Positions []float64 `json:"positions"`
}

// Sample is the style an animation renders at a position.
type Sample struct {
	Position float64         `json:"position"`
	Styles   domain.StyleMap `json:"styles"`
}

// SampleResponse lists the samples in request order.
type SampleResponse struct {
	DurationMs float64  `json:"duration_ms"`
	Samples    []Sample `json:"samples"`
}

// SimulateRequest runs a state change against an HTML fixture. SetStyles and
// AppendHTML describe the host mutation applied between registration and flush.
type SimulateRequest struct {
	Definitions string            `json:"definitions,omitempty"`
	Trigger     string            `json:"trigger"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	HTML        string            `json:"html"`
	ElementID   string            `json:"element_id"`
	SetStyles   map[string]string `json:"set_styles,omitempty"`
	AppendHTML  string            `json:"append_html,omitempty"`
	Driver      string            `json:"driver,omitempty"`
	Frames      int               `json:"frames,omitempty"`
}

type apiError struct {
	status int
	err    error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"app":     "kinetic-http",
		"version": strings.TrimSpace(kinetic.Version),
	})
}

// ListTriggers handles GET /v1/triggers.
func (s *Server) ListTriggers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string][]string{"triggers": s.Registry.Names()})
}

// GetTrigger handles GET /v1/triggers/{name}.
func (s *Server) GetTrigger(w http.ResponseWriter, r *http.Request) {
	trigger, err := s.Registry.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, &apiError{http.StatusNotFound, err})
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, trigger)
}

// Compile handles POST /v1/compile.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	var body CompileRequest
	if err := decode(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	resp, _, err := s.compile(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, resp)
}

// Sample handles POST /v1/sample.
func (s *Server) Sample(w http.ResponseWriter, r *http.Request) {
	var body SampleRequest
	if err := decode(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(body.Positions) == 0 {
		s.fail(w, r, &apiError{http.StatusBadRequest, errors.New("positions are required")})
		return
	}

	resp, tl, err := s.compile(body.CompileRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := SampleResponse{DurationMs: resp.DurationMs, Samples: make([]Sample, 0, len(body.Positions))}
	for _, p := range body.Positions {
		out.Samples = append(out.Samples, Sample{Position: p, Styles: interpolate.Sample(tl, p)})
	}
	writeJSON(w, s.Logger, http.StatusOK, out)
}

// Simulate handles POST /v1/simulate. Every request gets its own engine.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := decode(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	if body.Trigger == "" || body.ElementID == "" {
		s.fail(w, r, &apiError{http.StatusBadRequest, errors.New("trigger and element_id are required")})
		return
	}
	if body.Frames < 0 || body.Frames > simulation.MaxFrames {
		s.fail(w, r, &apiError{http.StatusBadRequest, fmt.Errorf("frames must be between 0 and %d", simulation.MaxFrames)})
		return
	}
	trigger, err := s.lookup(body.Definitions, body.Trigger)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := simulation.Run(r.Context(), simulation.Scenario{
		Trigger:    trigger,
		HTML:       body.HTML,
		ElementID:  body.ElementID,
		From:       body.From,
		To:         body.To,
		SetStyles:  body.SetStyles,
		AppendHTML: body.AppendHTML,
		Driver:     body.Driver,
		Frames:     body.Frames,
	}, simulation.Options{Logger: s.Logger, Hooks: s.Hooks})
	if err != nil {
		s.fail(w, r, &apiError{http.StatusBadRequest, err})
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, res)
}

func (s *Server) compile(req CompileRequest) (*CompileResponse, domain.Timeline, error) {
	if req.Trigger == "" {
		return nil, domain.Timeline{}, &apiError{http.StatusBadRequest, errors.New("trigger is required")}
	}
	trigger, err := s.lookup(req.Definitions, req.Trigger)
	if err != nil {
		return nil, domain.Timeline{}, err
	}

	tl, tr, err := compiler.CompileTransition(trigger, req.From, req.To)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNoTransition) {
			status = http.StatusUnprocessableEntity
		}
		return nil, domain.Timeline{}, &apiError{status, err}
	}

	pre, post := compiler.Wildcards(tl)
	res := compiler.Resolution{
		Pre:  domain.NewStyleMap(req.Pre),
		Post: domain.NewStyleMap(req.Post),
	}
	var unresolved []string
	for _, prop := range pre {
		if _, ok := res.Pre[prop]; !ok {
			unresolved = append(unresolved, prop)
		}
	}
	for _, prop := range post {
		if _, ok := res.Post[prop]; !ok && !slices.Contains(unresolved, prop) {
			unresolved = append(unresolved, prop)
		}
	}
	tl = res.Apply(tl)

	return &CompileResponse{
		Trigger:    trigger.Name,
		Expr:       tr.Expr,
		From:       req.From,
		To:         req.To,
		DurationMs: float64(tl.Duration.Microseconds()) / 1000,
		Keyframes:  tl.Flatten(),
		Unresolved: unresolved,
	}, tl, nil
}

func (s *Server) lookup(definitions, name string) (*domain.Trigger, error) {
	if definitions == "" {
		trigger, err := s.Registry.Get(name)
		if err != nil {
			return nil, &apiError{http.StatusNotFound, err}
		}
		return trigger, nil
	}

	triggers, err := compiler.ParseDefinitions([]byte(definitions))
	if err != nil {
		return nil, &apiError{http.StatusBadRequest, err}
	}
	for _, t := range triggers {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, &apiError{http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrUnknownTrigger, name)}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &apiError{http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		status = apiErr.status
	}
	s.Logger.Warn("request failed",
		"method", r.Method, "path", r.URL.Path, "status", status,
		"request_id", middleware.GetReqID(r.Context()), "err", err)
	writeJSON(w, s.Logger, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
