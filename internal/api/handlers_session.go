package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/minicolabs/minutes-flow/internal/capture"
	"github.com/minicolabs/minutes-flow/internal/minutes"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode minutes.InputMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.coordinator.SetMode(r.Context(), req.Mode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

func (s *Server) handleSetText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.coordinator.SetText(req.Text)
	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

func (s *Server) handleUploadAudio(w http.ResponseWriter, r *http.Request) {
	if s.coordinator.State().Mode == minutes.ModeText {
		writeError(w, http.StatusConflict, "switch to upload mode before sending audio")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read audio file")
		return
	}

	s.coordinator.AttachClip(capture.ClipFromBytes(data, header.Filename))
	s.logger.Info(r.Context(), "Audio uploaded: %s (%d bytes)", header.Filename, len(data))

	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

func (s *Server) handleRecordStart(w http.ResponseWriter, r *http.Request) {
	if err := s.coordinator.StartRecording(r.Context()); err != nil {
		writeJSON(w, http.StatusConflict, viewOf(s.coordinator.State()))
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

func (s *Server) handleRecordStop(w http.ResponseWriter, r *http.Request) {
	if err := s.coordinator.StopRecording(r.Context()); err != nil {
		writeJSON(w, http.StatusConflict, viewOf(s.coordinator.State()))
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}
