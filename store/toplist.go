package store

import "sync"

// TopList is a thread-safe ordered list of top story IDs. Set by the poller
// after each upstream refresh, read by the listing handler for pagination.
type TopList struct {
	mu  sync.RWMutex
	ids []int
}

func NewTopList() *TopList {
	return &TopList{}
}

// Set replaces the entire list of top story IDs.
func (t *TopList) Set(ids []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = make([]int, len(ids))
	copy(t.ids, ids)
}

// Page returns the IDs for the given zero-based page. A page past the end of
// the list returns an empty slice.
func (t *TopList) Page(page, pageSize int) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	offset := page * pageSize
	if offset >= len(t.ids) {
		return nil
	}

	end := offset + pageSize
	if end > len(t.ids) {
		end = len(t.ids)
	}

	result := make([]int, end-offset)
	copy(result, t.ids[offset:end])
	return result
}

// Len returns the number of IDs in the list.
func (t *TopList) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
