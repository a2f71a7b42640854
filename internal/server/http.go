package server

import (
	"bufio"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/app"
	"github.com/muurk/vibetagger/internal/ingest"
	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/version"
	"github.com/muurk/vibetagger/internal/vibe"
)

// uploadMemory is how much of an upload is held in memory; larger parts
// spill to temporary files. There is no size limit.
const uploadMemory = 32 << 20

//go:embed static
var staticFiles embed.FS

// StateView is the JSON form of an app.State
type StateView struct {
	Phase   app.Phase    `json:"phase"`
	Image   string       `json:"image,omitempty"`
	Loading bool         `json:"loading"`
	Result  *vibe.Result `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// NewStateView converts a state snapshot for the wire
func NewStateView(s app.State) StateView {
	return StateView{
		Phase:   s.Phase(),
		Image:   s.Image,
		Loading: s.Loading,
		Result:  s.Result,
		Error:   s.Error,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	mux.Handle("GET /", http.FileServerFS(static))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/image", s.handleImage)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/ws", s.handleWebSocket)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  version.Version,
		"sessions": s.sessions.len(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.ensure(w, r)
	writeJSON(w, http.StatusOK, NewStateView(sess.controller.State()))
}

// handleImage accepts a multipart upload in the "file" field. The response
// is sent after the image has been read into the session.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.ensure(w, r)

	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid upload: " + err.Error()})
		return
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}

	done, err := sess.controller.SelectImage(ingest.NewUploadedFile(fh))
	switch {
	case errors.Is(err, ingest.ErrInvalidFileType):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ingest.InvalidFileTypeMessage})
		return
	case errors.Is(err, app.ErrAnalysisInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	// Multipart temp files are removed when the handler returns.
	select {
	case <-done:
	case <-r.Context().Done():
		return
	}

	writeJSON(w, http.StatusOK, NewStateView(sess.controller.State()))
}

// handleGenerate dispatches an analysis. It does not wait for the result;
// clients poll /api/state or listen on /api/ws.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.ensure(w, r)

	// The analysis outlives the request.
	if done := sess.controller.Generate(s.ctx); done == nil {
		writeJSON(w, http.StatusConflict, NewStateView(sess.controller.State()))
		return
	}

	writeJSON(w, http.StatusAccepted, NewStateView(sess.controller.State()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.ensure(w, r)
	sess.controller.Reset()
	writeJSON(w, http.StatusOK, NewStateView(sess.controller.State()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("Failed to write JSON response", zap.Error(err))
	}
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, sessionID(r))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.LogHTTPResponse(r.RemoteAddr, r.URL.Path, rec.status, time.Since(start))
	})
}
