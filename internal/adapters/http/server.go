// Package http exposes the engines over a JSON REST surface for hosts
// that drive sessions remotely instead of over MCP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parley/internal/logging"
	"parley/pkg/catalog"
	"parley/pkg/domain"
	"parley/pkg/gamemaster"
	"parley/pkg/session"
	"parley/pkg/storefront"
)

// Server routes session and catalog operations to the engines.
type Server struct {
	gm       *gamemaster.Engine
	shop     *storefront.Engine
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the full HTTP handler, including health and metrics.
func NewHandler(gm *gamemaster.Engine, shop *storefront.Engine, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		gm:       gm,
		shop:     shop,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions", s.handleListSessions)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Get("/scene", s.handleScene)
			r.Post("/action", s.handleAction)
			r.Get("/journal", s.handleJournal)
			r.Post("/restart", s.handleRestart)

			r.Get("/cart", s.handleShowCart)
			r.Post("/cart", s.handleAddToCart)
			r.Delete("/cart", s.handleClearCart)
			r.Post("/order", s.handlePlaceOrder)
			r.Get("/record", s.handleRecord)
		})

		r.Get("/products", s.handleSearchProducts)
		r.Get("/orders/latest", s.handleLastOrder)
	})

	return r
}

type startSessionRequest struct {
	Mode string `json:"mode"`
	Name string `json:"name,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type outcomeResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type textResponse struct {
	Text string `json:"text"`
}

type actionRequest struct {
	Text string `json:"text"`
}

type cartRequest struct {
	Text     string `json:"text"`
	Quantity int    `json:"quantity,omitempty"`
	Size     string `json:"size,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var startScene string
	switch body.Mode {
	case "", "adventure":
		startScene = s.gm.World().Start()
	case "shopping":
		startScene = ""
	default:
		http.Error(w, "mode must be 'adventure' or 'shopping'", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.Start(r.Context(), startScene)
	if err != nil {
		s.writeError(w, err)
		return
	}
	text, err := s.withSession(r.Context(), sess.ID, func(sess *domain.Session) string {
		if body.Mode == "shopping" {
			return s.shop.Start(sess, body.Name)
		}
		return s.gm.Start(sess, body.Name)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.ID, Text: text})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: s.gm.SceneText(sess)})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var body actionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var outcome domain.Outcome
	_, err := s.withSession(r.Context(), chi.URLParam(r, "sessionID"), func(sess *domain.Session) string {
		outcome = s.gm.Apply(sess, body.Text)
		return outcome.Text
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Kind: string(outcome.Kind), Text: outcome.Text})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: gamemaster.JournalText(sess)})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	text, err := s.withSession(r.Context(), chi.URLParam(r, "sessionID"), func(sess *domain.Session) string {
		return s.gm.Restart(sess)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := make(map[string]any, len(q))
	for key := range q {
		raw[key] = q.Get(key)
	}
	products := s.shop.Catalog().Query(catalog.ParseFilters(raw))

	writeJSON(w, http.StatusOK, struct {
		Products []domain.Product `json:"products"`
		Text     string           `json:"text"`
	}{
		Products: products,
		Text:     storefront.RenderResults(products),
	})
}

func (s *Server) handleShowCart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []domain.LineItem `json:"items"`
		Text  string            `json:"text"`
	}{Items: sess.Cart, Text: s.shop.CartText(sess)})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var body cartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var outcome domain.Outcome
	_, err := s.withSession(r.Context(), chi.URLParam(r, "sessionID"), func(sess *domain.Session) string {
		outcome = s.shop.AddToCart(sess, body.Text, body.Quantity, body.Size)
		return outcome.Text
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Kind: string(outcome.Kind), Text: outcome.Text})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	text, err := s.withSession(r.Context(), chi.URLParam(r, "sessionID"), func(sess *domain.Session) string {
		return s.shop.ClearCart(sess)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var outcome domain.Outcome
	_, err := s.withSession(r.Context(), chi.URLParam(r, "sessionID"), func(sess *domain.Session) string {
		outcome = s.shop.PlaceOrder(r.Context(), sess)
		return outcome.Text
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Kind: string(outcome.Kind), Text: outcome.Text})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: s.shop.RecordText(sess)})
}

func (s *Server) handleLastOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, textResponse{Text: s.shop.LastOrderText(r.Context())})
}

// withSession runs fn against a loaded session under its lock and persists
// the mutated session afterwards.
func (s *Server) withSession(ctx context.Context, sessionID string, fn func(*domain.Session) string) (string, error) {
	var text string
	err := s.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		text = fn(sess)
		return s.sessions.Store().Save(ctx, sessionID, sess)
	})
	return text, err
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.logger.Error("request failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}
