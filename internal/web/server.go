// Package web serves the browser form for the tutor.
package web

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/igoryan-dao/ricochet-tutor/internal/agent"
	"github.com/igoryan-dao/ricochet-tutor/internal/format"
	"github.com/igoryan-dao/ricochet-tutor/internal/session"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
)

// CookieName holds the browser's session key, the ID of its tutor session
const CookieName = "tutor_session"

// Asker runs one tutor turn
type Asker interface {
	Ask(ctx context.Context, text string, sess *session.Session) (string, tutor.Metadata, *session.Session)
}

// browserState is what one browser sees between requests
type browserState struct {
	mu        sync.Mutex // serializes turns of one browser
	sess      *session.Session
	lastReply string
	lastMeta  tutor.Metadata
}

// Server handles the form UI. Conversations live in memory only.
type Server struct {
	asker    Asker
	mu       sync.Mutex
	browsers map[string]*browserState
	mux      *http.ServeMux
}

// NewServer creates a form server backed by asker
func NewServer(asker Asker) *Server {
	s := &Server{
		asker:    asker,
		browsers: make(map[string]*browserState),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /ask", s.handleAsk)
	s.mux.HandleFunc("POST /reset", s.handleReset)
	return s
}

// Handler exposes the routes
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[Web] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// lookup returns the browser's state without creating any
func (s *Server) lookup(r *http.Request) (string, *browserState, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.browsers[c.Value]
	return c.Value, st, ok
}

// register stores st under its session ID and issues the cookie
func (s *Server) register(w http.ResponseWriter, id string, st *browserState) {
	s.mu.Lock()
	s.browsers[id] = st
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// page is the template data
type page struct {
	Query   string
	Reply   template.HTML
	Meta    tutor.Metadata
	HasMeta bool
	Hint    string
	Notice  string
	Warning string
}

func (st *browserState) page() page {
	return page{
		Reply:   template.HTML(format.ToHTML(st.lastReply)),
		Meta:    st.lastMeta,
		HasMeta: !st.lastMeta.IsEmpty(),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var p page
	if _, st, ok := s.lookup(r); ok {
		st.mu.Lock()
		p = st.page()
		st.mu.Unlock()
	}
	s.render(w, http.StatusOK, p)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	_, st, known := s.lookup(r)
	query := r.FormValue("query")

	if strings.TrimSpace(query) == "" {
		var p page
		if known {
			st.mu.Lock()
			p = st.page()
			st.mu.Unlock()
		}
		p.Warning = "Please enter something before clicking Send."
		s.render(w, http.StatusOK, p)
		return
	}

	// State is created on the first real turn only.
	if !known {
		st = &browserState{}
	}

	st.mu.Lock()
	reply, meta, sess := s.asker.Ask(r.Context(), query, st.sess)
	st.sess = sess
	st.lastReply = reply
	st.lastMeta = meta
	p := st.page()
	st.mu.Unlock()

	if !known {
		s.register(w, sess.ID(), st)
		log.Printf("[Web] session=%s started", sess.ID())
	}

	p.Query = query
	if detail, failed := tutor.ErrorDetail(reply); failed {
		log.Printf("[Web] session=%s turn failed: %s", sess.ID(), detail)
		p.Hint = agent.TranslateError(errors.New(detail))
	}
	s.render(w, http.StatusOK, p)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if id, _, ok := s.lookup(r); ok {
		s.mu.Lock()
		delete(s.browsers, id)
		s.mu.Unlock()
		log.Printf("[Web] session=%s reset", id)
	}

	s.render(w, http.StatusOK, page{Notice: "Tutor memory cleared! Start a new conversation."})
}

// Sessions returns the number of browsers with state
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.browsers)
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, p); err != nil {
		log.Printf("[Web] render failed: %v", err)
	}
}
