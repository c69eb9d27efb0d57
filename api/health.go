package api

import (
	"net/http"

	"hn-reader/server/store"
)

type HealthHandler struct {
	cache   store.SummaryCache
	topList *store.TopList
}

func NewHealthHandler(cache store.SummaryCache, topList *store.TopList) *HealthHandler {
	return &HealthHandler{cache: cache, topList: topList}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":         "ok",
		"cache_backend":  h.cache.Name(),
		"top_list_count": h.topList.Len(),
	}
	writeJSON(w, r, resp)
}
