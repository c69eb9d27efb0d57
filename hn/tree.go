package hn

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

const (
	// DefaultMaxDepth bounds recursion from a top-level comment to its deepest
	// resolved descendant. Nodes at the bound keep their Kids list but get no
	// Replies.
	DefaultMaxDepth = 3

	// DefaultMaxComments bounds how many top-level comments are fetched per
	// story. The limit applies at the top level only.
	DefaultMaxComments = 10

	// maxTreeNodes caps total visited nodes per tree fetch. Upstream declares
	// its own bounds but is not trusted.
	maxTreeNodes = 512
)

// FetchCommentTree resolves up to maxCount top-level comments from rootIDs and
// their replies down to maxDepth levels. Dead comments are excluded entirely,
// deleted comments appear as textless stubs, and any per-node failure degrades
// to absence rather than failing the tree. The returned order matches rootIDs.
func (c *Client) FetchCommentTree(ctx context.Context, rootIDs []int, maxCount, maxDepth int) []*Comment {
	if maxCount < 0 {
		maxCount = 0
	}
	if len(rootIDs) > maxCount {
		rootIDs = rootIDs[:maxCount]
	}
	if len(rootIDs) == 0 {
		return []*Comment{}
	}

	var visited atomic.Int64
	results := make([]*Comment, len(rootIDs))
	var wg sync.WaitGroup
	for i, id := range rootIDs {
		wg.Add(1)
		go func(idx, commentID int) {
			defer wg.Done()
			results[idx] = c.fetchComment(ctx, commentID, 0, maxDepth, &visited)
		}(i, id)
	}
	wg.Wait()

	out := make([]*Comment, 0, len(results))
	for _, cm := range results {
		if cm != nil {
			out = append(out, cm)
		}
	}
	return out
}

// fetchComment resolves a single comment at the given depth. A nil return
// means the node is absent from the tree: dead, missing, failed, or over the
// visited-node cap.
func (c *Client) fetchComment(ctx context.Context, id, depth, maxDepth int, visited *atomic.Int64) *Comment {
	if visited.Add(1) > maxTreeNodes {
		return nil
	}

	item, err := c.GetItem(ctx, id)
	if err != nil {
		slog.Debug("comment fetch failed, dropping subtree", "comment_id", id, "error", err)
		return nil
	}
	if item == nil || item.ID == 0 || item.Dead {
		return nil
	}

	cm := &Comment{
		ID:      item.ID,
		By:      item.By,
		Time:    item.Time,
		Kids:    item.Kids,
		Deleted: item.Deleted,
	}
	if !item.Deleted {
		cm.Text = item.Text
	}

	if depth+1 > maxDepth || len(item.Kids) == 0 {
		return cm
	}

	replies := make([]*Comment, len(item.Kids))
	var wg sync.WaitGroup
	for i, kid := range item.Kids {
		wg.Add(1)
		go func(idx, kidID int) {
			defer wg.Done()
			replies[idx] = c.fetchComment(ctx, kidID, depth+1, maxDepth, visited)
		}(i, kid)
	}
	wg.Wait()

	for _, r := range replies {
		if r != nil {
			cm.Replies = append(cm.Replies, r)
		}
	}
	return cm
}
