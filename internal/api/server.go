package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
	"github.com/minicolabs/minutes-flow/internal/session"
)

// Server exposes the session coordinator over HTTP.
type Server struct {
	coordinator *session.Coordinator
	logger      logger.Logger
}

// New creates a Server around a coordinator.
func New(coordinator *session.Coordinator, log logger.Logger) *Server {
	return &Server{coordinator: coordinator, logger: log}
}

// Routes builds the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.handleGetSession)
		r.Post("/session/mode", s.handleSetMode)
		r.Post("/session/text", s.handleSetText)
		r.Post("/session/audio", s.handleUploadAudio)
		r.Post("/session/record/start", s.handleRecordStart)
		r.Post("/session/record/stop", s.handleRecordStop)
		r.Post("/generate", s.handleGenerate)
		r.Post("/derivative", s.handleDerivative)
		r.Get("/document", s.handleDocument)
		r.Get("/document/export", s.handleExport)
	})

	return r
}

// sessionView is the JSON snapshot of the session state. Clip bytes never
// leave the server; only the display reference does.
type sessionView struct {
	Phase        session.Phase     `json:"phase"`
	Mode         minutes.InputMode `json:"mode"`
	Text         string            `json:"text"`
	HasClip      bool              `json:"hasClip"`
	ClipRef      string            `json:"clipRef,omitempty"`
	ClipMIMEType string            `json:"clipMimeType,omitempty"`
	Preview      string            `json:"preview"`
	Result       *minutes.Result   `json:"result,omitempty"`
	Error        string            `json:"error,omitempty"`
	ErrorKind    minutes.ErrorKind `json:"errorKind,omitempty"`
	Recording    bool              `json:"isRecording"`
	Generating   bool              `json:"isGenerating"`
	LoadingExtra bool              `json:"isLoadingExtra"`
	CanSubmit    bool              `json:"canSubmit"`
	CanExpand    bool              `json:"canExpand"`
	Version      int               `json:"version"`
}

func viewOf(st session.State) sessionView {
	v := sessionView{
		Phase:        st.Phase,
		Mode:         st.Mode,
		Text:         st.Text,
		Preview:      st.Preview,
		Result:       st.Result,
		Error:        st.Error,
		ErrorKind:    st.ErrorKind,
		Recording:    st.Recording,
		Generating:   st.Generating,
		LoadingExtra: st.LoadingExtra,
		CanSubmit:    st.CanSubmit(),
		CanExpand:    st.CanExpand(),
		Version:      st.Version,
	}
	if st.Clip != nil {
		v.HasClip = true
		v.ClipRef = st.Clip.Ref
		v.ClipMIMEType = st.Clip.MIMEType
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
