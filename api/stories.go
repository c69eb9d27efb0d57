package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"hn-reader/server/hn"
	"hn-reader/server/store"
)

// ItemsPerPage is the fixed page size for the story listing.
const ItemsPerPage = 10

type StoriesHandler struct {
	client  *hn.Client
	topList *store.TopList
}

func NewStoriesHandler(client *hn.Client, topList *store.TopList) *StoriesHandler {
	return &StoriesHandler{client: client, topList: topList}
}

// ListStories handles GET /api/stories?page=N (zero-based).
func (h *StoriesHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n >= 0 {
			page = n
		}
	}

	// The poller keeps the top list warm; fall back to a direct upstream call
	// until the first poll lands.
	if h.topList.Len() == 0 {
		ids, err := h.client.TopStories(ctx)
		if err != nil {
			slog.Error("error fetching top stories", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch stories")
			return
		}
		h.topList.Set(ids)
	}

	pageIDs := h.topList.Page(page, ItemsPerPage)

	stories := make([]*hn.Story, 0, len(pageIDs))
	for _, item := range h.client.GetItems(ctx, pageIDs) {
		if item == nil || item.ID == 0 || item.Deleted || item.Dead {
			continue
		}
		stories = append(stories, item.Story())
	}

	writeJSON(w, r, stories)
}
