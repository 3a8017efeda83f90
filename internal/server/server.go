// Package server exposes field-of-view passes over WebSocket.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shadowcast-rogue/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	idleWait       = 60 * time.Second
	maxMessageSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server answers FOV requests on /ws and liveness probes on /health.
type Server struct {
	Addr string
}

// New returns a server that will listen on addr.
func New(addr string) *Server {
	return &Server{Addr: addr}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	return mux
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	logger.Log.WithFields(logrus.Fields{"component": "fov_server", "addr": s.Addr}).Info("listening")
	return http.ListenAndServe(s.Addr, s.Handler())
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Log.WithFields(logrus.Fields{"component": "fov_server", "remote": r.RemoteAddr}).
			WithError(err).Debug("health write failed")
	}
}

// handleWS answers each request message with one response message, in
// order, until the client goes away or stays idle too long.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := logger.Log.WithFields(logrus.Fields{"component": "fov_server", "remote": r.RemoteAddr})

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("close failed")
		}
	}()
	log.Debug("client connected")

	conn.SetReadLimit(maxMessageSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(idleWait)); err != nil {
			log.WithError(err).Warn("failed to set read deadline")
			return
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read failed")
			}
			return
		}

		resp := handleMessage(data, log)
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.WithError(err).Warn("failed to set write deadline")
			return
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Warn("write failed")
			return
		}
	}
}

func handleMessage(data []byte, log *logrus.Entry) any {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		log.WithError(err).Debug("bad request")
		return errorResponse(errors.New("malformed JSON request"))
	}
	resp, err := Compute(req)
	if err != nil {
		log.WithError(err).Debug("rejected request")
		return errorResponse(err)
	}
	log.WithFields(logrus.Fields{
		"width":   req.Width,
		"height":  req.Height,
		"radius":  req.Radius,
		"visible": resp.Count,
	}).Debug("fov computed")
	return resp
}
