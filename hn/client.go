package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// ErrNotFound indicates the upstream API has no record for the requested item.
var ErrNotFound = errors.New("item not found")

type Client struct {
	baseURL string
	http    *http.Client
	sem     chan struct{}
}

func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		sem:     make(chan struct{}, 10), // concurrency limit of 10
	}
}

func (c *Client) acquire(ctx context.Context) error {
	select {
	case c.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) release() { <-c.sem }

// TopStories returns up to 500 top story IDs in ranked order.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/topstories.json", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch top stories: status %d", resp.StatusCode)
	}

	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decode top stories: %w", err)
	}
	return ids, nil
}

// GetItem fetches a single HN item by ID. The upstream API answers unknown IDs
// with a literal "null" body, which decodes to a nil item.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/item/%d.json", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("create request for item %d: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch item %d: status %d", id, resp.StatusCode)
	}

	var item *Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode item %d: %w", id, err)
	}
	return item, nil
}

// GetItems fetches multiple items concurrently and returns them in order.
// Errors for individual items leave a nil slot but don't fail the batch.
func (c *Client) GetItems(ctx context.Context, ids []int) []*Item {
	results := make([]*Item, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(idx, itemID int) {
			defer wg.Done()
			item, err := c.GetItem(ctx, itemID)
			if err != nil {
				return
			}
			results[idx] = item
		}(i, id)
	}
	wg.Wait()
	return results
}

// FetchStory fetches a story by ID. Returns ErrNotFound when the item is
// absent upstream or has been deleted.
func (c *Client) FetchStory(ctx context.Context, id int) (*Story, error) {
	item, err := c.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ID == 0 || item.Deleted {
		return nil, ErrNotFound
	}
	return item.Story(), nil
}
