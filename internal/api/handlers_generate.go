package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minicolabs/minutes-flow/internal/minutes"
	"github.com/minicolabs/minutes-flow/internal/render"
)

// streamEvent is one SSE frame of a generation stream.
type streamEvent struct {
	Type    string            `json:"type"`
	Text    string            `json:"text,omitempty"`
	Result  *minutes.Result   `json:"result,omitempty"`
	Message string            `json:"message,omitempty"`
	Kind    minutes.ErrorKind `json:"kind,omitempty"`
}

// handleGenerate runs a primary generation, streaming fragments over SSE in
// arrival order, ending with a single done or error event.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdditionalInstructions string `json:"additionalInstructions"`
	}
	if r.Body != nil {
		// The body is optional; decode errors on an empty body are fine.
		json.NewDecoder(r.Body).Decode(&req)
	}

	if !s.coordinator.State().CanSubmit() {
		writeError(w, http.StatusConflict, "nothing to generate: provide text or audio first")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	writeSSE := func(ev streamEvent) {
		data, _ := json.Marshal(ev)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	result, err := s.coordinator.Generate(r.Context(), req.AdditionalInstructions, func(fragment string) {
		writeSSE(streamEvent{Type: "fragment", Text: fragment})
	})
	if err != nil {
		writeSSE(streamEvent{Type: "error", Message: err.Error(), Kind: minutes.KindOf(err)})
		return
	}

	writeSSE(streamEvent{Type: "done", Result: result})
}

func (s *Server) handleDerivative(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Feature minutes.FeatureKind `json:"feature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Feature.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown feature kind %q", req.Feature))
		return
	}

	if !s.coordinator.State().CanExpand() {
		writeError(w, http.StatusConflict, "no completed minutes to expand")
		return
	}

	if _, err := s.coordinator.RequestDerivative(r.Context(), req.Feature); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, viewOf(s.coordinator.State()))
}

// handleDocument returns the current result parsed into semantic blocks.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	state := s.coordinator.State()
	if state.Result == nil {
		writeError(w, http.StatusNotFound, "no document generated yet")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":      state.Result.Kind,
		"timestamp": state.Result.Timestamp,
		"logId":     state.Result.LogID,
		"blocks":    render.Parse(state.Result.Content),
	})
}

// handleExport streams the current result as a DOCX download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state := s.coordinator.State()
	if state.Result == nil {
		writeError(w, http.StatusNotFound, "no document generated yet")
		return
	}

	tmpDir, err := os.MkdirTemp("", "minutes-export-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "prepare export")
		return
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "minutes.docx")
	if err := render.WriteDocx("Meeting Minutes", state.Result.Content, path); err != nil {
		s.logger.Error(r.Context(), "DOCX export failed: %v", err)
		writeError(w, http.StatusInternalServerError, "render document")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read rendered document")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=minutes-%s.docx", state.Result.LogID))
	w.Write(data)
}
