// Package dashboard serves the web control panel: a static page, a JSON
// action endpoint, controller uploads, and a websocket status feed pushed
// once a second when the state changes.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/san-kum/sweepsim/internal/config"
)

//go:embed index.html
var pageFS embed.FS

// MaxUploadBytes caps controller uploads.
const MaxUploadBytes = 2 << 20

const pushInterval = time.Second

// Controller is what the dashboard drives. Implementations run matches and
// answer status queries; all methods must be safe for concurrent use.
type Controller interface {
	Start(subleague string) error
	Relocate()
	End()
	SetTeam(name string)
	Status() Status
}

type Server struct {
	cfg   config.DashboardConfig
	ctrl  Controller
	log   *zap.Logger
	state *State

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewServer(cfg config.DashboardConfig, ctrl Controller, log *zap.Logger) *Server {
	return &Server{
		cfg:   cfg,
		ctrl:  ctrl,
		log:   log,
		state: &State{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/action", s.handleAction)
	mux.HandleFunc("/upload", s.handleUpload)
	return mux
}

// Run serves until the context is cancelled, pushing status updates to
// websocket clients once a second when the snapshot changed.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}

	go s.pushLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("dashboard listening", zap.String("addr", s.cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) pushLoop(ctx context.Context) {
	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.state.Set(s.ctrl.Status())
			if payload, ok := s.state.Changed(); ok {
				s.broadcast(payload)
			}
		}
	}
}

func (s *Server) broadcast(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, _ := pageFS.ReadFile("index.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	// Send the current status immediately so the page renders without
	// waiting for the next change. This must happen before the conn is
	// registered: once it is in clients, broadcast may write to it, and the
	// connection allows only one concurrent writer.
	if data, err := json.Marshal(s.ctrl.Status()); err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Info("dashboard client connected", zap.String("remote", r.RemoteAddr))

	go s.readLoop(conn)
}

// readLoop accepts the same actions as the HTTP endpoint, sent as JSON text
// frames over the socket.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req actionRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			continue
		}
		if err := s.dispatch(req); err != nil {
			s.log.Warn("websocket action failed", zap.String("action", req.Action), zap.Error(err))
		}
	}
}

type actionRequest struct {
	Action    string `json:"action"`
	Subleague string `json:"subleague,omitempty"`
	Team      string `json:"team,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.dispatch(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dispatch(req actionRequest) error {
	switch req.Action {
	case "run":
		s.log.Info("starting match", zap.String("subleague", req.Subleague))
		return s.ctrl.Start(req.Subleague)
	case "relocate":
		s.ctrl.Relocate()
		return nil
	case "end":
		s.ctrl.End()
		return nil
	case "set_team":
		name := strings.TrimSpace(req.Team)
		if name == "" {
			return fmt.Errorf("empty team name")
		}
		s.ctrl.SetTeam(name)
		return nil
	default:
		return fmt.Errorf("unknown action %q", req.Action)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	file, header, err := r.FormFile("controller")
	if err != nil {
		http.Error(w, "missing controller file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	if err := os.MkdirAll(s.cfg.UploadsDir, 0755); err != nil {
		http.Error(w, "store failed", http.StatusInternalServerError)
		return
	}
	name := filepath.Base(header.Filename)
	if err := os.WriteFile(filepath.Join(s.cfg.UploadsDir, name), data, 0644); err != nil {
		http.Error(w, "store failed", http.StatusInternalServerError)
		return
	}

	// An upload may carry the team name alongside the code, the same way the
	// robot announces it.
	if team := strings.TrimSpace(r.FormValue("team")); team != "" {
		s.ctrl.SetTeam(team)
	}

	s.log.Info("controller uploaded",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Uint64("hash", xxhash.Sum64(data)))
	w.WriteHeader(http.StatusNoContent)
}
