package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/encore/internal/platform/random"
	storagesqlite "github.com/louisbranch/encore/internal/services/game/storage/sqlite"
	"github.com/louisbranch/encore/internal/services/reply"
)

// Server hosts the encore game service.
type Server struct {
	listener net.Listener
	httpSrv  *http.Server
	hub      *Hub
	store    *storagesqlite.Store
	gemini   *reply.Gemini
}

// New creates a configured game server listening on the provided port.
func New(ctx context.Context, port int) (*Server, error) {
	return NewWithAddr(ctx, fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured game server on an explicit address.
func NewWithAddr(ctx context.Context, addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	store, err := openSaveStore()
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	session, err := NewSession(ctx, store, saveSlot())
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}
	gemini, err := openReplyGenerator(ctx, session)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}
	hub := NewHub(session)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		listener: listener,
		httpSrv:  &http.Server{Handler: mux},
		hub:      hub,
		store:    store,
		gemini:   gemini,
	}, nil
}

// openReplyGenerator installs a chat reply generator on the session:
// Gemini when an API key is configured, canned offline replies otherwise.
// The returned client is non-nil only for Gemini and must be closed.
func openReplyGenerator(ctx context.Context, session *Session) (*reply.Gemini, error) {
	apiKey := strings.TrimSpace(os.Getenv("ENCORE_GEMINI_API_KEY"))
	if apiKey == "" {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("generate seed: %w", err)
		}
		session.SetReplyGenerator(&reply.Canned{Rng: random.NewSource(seed)})
		return nil, nil
	}
	gemini, err := reply.NewGemini(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("open reply generator: %w", err)
	}
	session.SetReplyGenerator(gemini)
	return gemini, nil
}

// Addr returns the listener address for the game server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server until the context ends.
func Run(ctx context.Context, port int) error {
	srv, err := New(ctx, port)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// RunWithAddr creates and serves a game server on an explicit address.
func RunWithAddr(ctx context.Context, addr string) error {
	srv, err := NewWithAddr(ctx, addr)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the game server and blocks until it stops or the context
// ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if err := s.gemini.Close(); err != nil {
			log.Printf("close reply generator: %v", err)
		}
		if err := s.store.Close(); err != nil {
			log.Printf("close save store: %v", err)
		}
	}()

	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go s.hub.Run(hubCtx)

	log.Printf("game server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpSrv.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown http server: %v", err)
		}
		return handleErr(<-serveErr)
	case err := <-serveErr:
		return handleErr(err)
	}
}

func openSaveStore() (*storagesqlite.Store, error) {
	path := strings.TrimSpace(os.Getenv("ENCORE_GAME_DB_PATH"))
	if path == "" {
		path = filepath.Join("data", "game.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func saveSlot() string {
	slot := strings.TrimSpace(os.Getenv("ENCORE_GAME_SAVE_SLOT"))
	if slot == "" {
		return DefaultSlot
	}
	return slot
}
