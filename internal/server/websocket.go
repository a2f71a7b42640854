package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleWebSocket pushes the session state on connect and after every
// transition. Client messages are ignored apart from control frames.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.ensure(w, r)

	// The handshake is written by the upgrader, so a cookie issued for a
	// new session has to travel in its response header.
	var header http.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logging.Warn("WebSocket upgrade failed", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	logging.LogConnection(r.RemoteAddr, "websocket_connected")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.serveConn(conn, sess, r.RemoteAddr)
	}()
}

// serveConn runs the write pump for one connection. A read pump runs
// alongside it to process pongs and detect the peer closing.
func (s *Server) serveConn(conn *websocket.Conn, sess *session, remoteAddr string) {
	defer func() {
		conn.Close()
		logging.LogConnection(remoteAddr, "websocket_disconnected")
	}()

	// Coalesces notifications: the writer always sends the latest state.
	notify := make(chan struct{}, 1)
	unsubscribe := sess.controller.Subscribe(func(app.State) {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go s.readPump(conn, remoteAddr, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := writeState(conn, sess.controller.State(), remoteAddr); err != nil {
		return
	}

	for {
		select {
		case <-notify:
			if err := writeState(conn, sess.controller.State(), remoteAddr); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logging.Debug("Ping failed", zap.String("remote_addr", remoteAddr), zap.Error(err))
				return
			}

		case <-closed:
			return

		case <-s.ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

func (s *Server) readPump(conn *websocket.Conn, remoteAddr string, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("WebSocket read error", zap.String("remote_addr", remoteAddr), zap.Error(err))
			}
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "received", msgType, data)
	}
}

func writeState(conn *websocket.Conn, state app.State, remoteAddr string) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(NewStateView(state)); err != nil {
		logging.Debug("Failed to push state", zap.String("remote_addr", remoteAddr), zap.Error(err))
		return err
	}
	logging.Debug("State pushed",
		zap.String("remote_addr", remoteAddr),
		zap.String("phase", string(state.Phase())),
	)
	return nil
}
