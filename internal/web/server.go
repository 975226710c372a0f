// Package web serves the game to a browser over a WebSocket.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/verte-zerg/kanatype/internal/game"
	"github.com/verte-zerg/kanatype/internal/generator"
	"github.com/verte-zerg/kanatype/internal/store"
	"github.com/verte-zerg/kanatype/internal/tone"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 5 * time.Second

// EngineFactory builds one engine per connection so word generators are
// never shared between goroutines.
type EngineFactory func() *game.Engine

// Server hosts the page and one Session per WebSocket connection.
type Server struct {
	addr      string
	newEngine EngineFactory
	store     store.HighScoreStore
	level     generator.Level
}

// NewServer wires a server; newEngine is called once per connection.
func NewServer(addr string, newEngine EngineFactory, st store.HighScoreStore, level generator.Level) *Server {
	return &Server{
		addr:      addr,
		newEngine: newEngine,
		store:     st,
		level:     level,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/meta", s.handleMeta)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/*", staticHandler())
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving on http://%s", displayAddr(s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}

// Healthz answers liveness probes.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Meta is the static game description the page needs before connecting.
type Meta struct {
	Levels     []LevelView           `json:"levels"`
	Default    string                `json:"defaultLevel"`
	Cues       map[string][]NoteView `json:"cues"`
	Music      MusicView             `json:"music"`
	MasterGain float64               `json:"masterGain"`
}

// LevelView describes one selectable level.
type LevelView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// NoteView mirrors tone.Note with durations in seconds.
type NoteView struct {
	Frequency float64 `json:"frequency"`
	Duration  float64 `json:"duration"`
	Type      string  `json:"type"`
	Gain      float64 `json:"gain"`
	Detune    float64 `json:"detune,omitempty"`
	Attack    float64 `json:"attack"`
	Release   float64 `json:"release"`
}

// MusicView carries the background drone parameters.
type MusicView struct {
	Frequency    float64 `json:"frequency"`
	Gain         float64 `json:"gain"`
	VibratoRate  float64 `json:"vibratoRate"`
	VibratoDepth float64 `json:"vibratoDepth"`
}

func (s *Server) meta() Meta {
	m := Meta{
		Default:    string(s.level),
		Cues:       make(map[string][]NoteView, len(tone.Cues)),
		MasterGain: tone.MasterGain,
		Music: MusicView{
			Frequency:    tone.MusicFrequency,
			Gain:         tone.MusicGain,
			VibratoRate:  tone.MusicVibratoRate,
			VibratoDepth: tone.MusicVibratoDepth,
		},
	}
	for _, l := range generator.Levels {
		r := l.Range()
		m.Levels = append(m.Levels, LevelView{ID: string(l), Label: l.Label(), Min: r.Min, Max: r.Max})
	}
	for cue, notes := range tone.Cues {
		views := make([]NoteView, 0, len(notes))
		for _, n := range notes {
			views = append(views, NoteView{
				Frequency: n.Frequency,
				Duration:  n.Duration.Seconds(),
				Type:      string(n.Wave),
				Gain:      n.Gain,
				Detune:    n.Detune,
				Attack:    tone.DefaultAttack.Seconds(),
				Release:   tone.DefaultRelease.Seconds(),
			})
		}
		m.Cues[string(cue)] = views
	}
	return m
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.meta()); err != nil {
		log.Printf("failed to encode meta: %v", err)
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Printf("failed to open embedded assets: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}
