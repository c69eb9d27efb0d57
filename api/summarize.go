package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hn-reader/server/hn"
	"hn-reader/server/summary"
)

type SummarizeHandler struct {
	svc *summary.Service
}

func NewSummarizeHandler(svc *summary.Service) *SummarizeHandler {
	return &SummarizeHandler{svc: svc}
}

type summarizeRequest struct {
	URL      string        `json:"url"`
	Comments []*hn.Comment `json:"comments"`
}

// Summarize handles POST /api/summarize with either {url} or {comments}.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Summarize(r.Context(), summary.Request{
		URL:      req.URL,
		Comments: req.Comments,
	})
	if errors.Is(err, summary.ErrMissingParameter) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("summarization failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, result)
}
