package worker

import (
	"context"
	"log/slog"
	"time"

	"hn-reader/server/hn"
	"hn-reader/server/store"
)

// Poller keeps the in-memory top-story list fresh so the listing endpoint can
// paginate without an upstream round trip.
type Poller struct {
	client   *hn.Client
	topList  *store.TopList
	interval time.Duration
}

func NewPoller(client *hn.Client, topList *store.TopList) *Poller {
	return &Poller{
		client:   client,
		topList:  topList,
		interval: 5 * time.Minute,
	}
}

// Start begins the polling loop. It runs until the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		p.poll(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("poller: shutting down")
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

func (p *Poller) poll(ctx context.Context) {
	start := time.Now()
	ids, err := p.client.TopStories(ctx)
	if err != nil {
		slog.Error("error fetching top stories", "error", err)
		return
	}
	p.topList.Set(ids)
	slog.Info("top list updated", "count", len(ids), "elapsed", time.Since(start))
}
