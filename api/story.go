package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hn-reader/server/hn"
)

type StoryHandler struct {
	client *hn.Client
}

func NewStoryHandler(client *hn.Client) *StoryHandler {
	return &StoryHandler{client: client}
}

// GetStory handles GET /api/stories/{id}. It returns the story and its
// resolved comment forest. A failed comment subtree shows up as fewer replies,
// never as a request failure; only a missing or unreachable root story is
// fatal.
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	story, err := h.client.FetchStory(ctx, id)
	if errors.Is(err, hn.ErrNotFound) {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	if err != nil {
		slog.Error("error fetching story", "story_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch story")
		return
	}

	comments := h.client.FetchCommentTree(ctx, story.Kids, hn.DefaultMaxComments, hn.DefaultMaxDepth)

	writeJSON(w, r, map[string]interface{}{
		"story":    story,
		"comments": comments,
	})
}
