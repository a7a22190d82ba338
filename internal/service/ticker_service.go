package service

import (
	"context"
	"sort"
	"sync"

	"okx_go/internal/domain"
)

// TickerService holds the latest ticker per instrument for the UI layer to
// poll. It consumes batches from the stream worker through a buffered channel.
type TickerService struct {
	mu         sync.RWMutex
	tickers    map[string]*domain.Ticker
	tickerChan chan []*domain.Ticker
}

// NewTickerService creates a TickerService.
func NewTickerService() *TickerService {
	return &TickerService{
		tickers:    make(map[string]*domain.Ticker),
		tickerChan: make(chan []*domain.Ticker, 256), // absorbs stream bursts
	}
}

// ProcessTickers applies a batch of ticker updates. Thread-safe; stale
// updates (older timestamp than the held one) are dropped.
func (s *TickerService) ProcessTickers(tickers []*domain.Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tick := range tickers {
		if current, ok := s.tickers[tick.InstID]; ok && current.TsMilli > tick.TsMilli {
			continue
		}
		s.tickers[tick.InstID] = tick
	}
}

// Get returns the latest ticker for an instrument, nil when none seen yet.
func (s *TickerService) Get(instID string) *domain.Ticker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tickers[instID]
}

// Snapshot returns all known tickers sorted by instrument id.
func (s *TickerService) Snapshot() []*domain.Ticker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Ticker, 0, len(s.tickers))
	for _, tick := range s.tickers {
		result = append(result, tick)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].InstID < result[j].InstID
	})

	return result
}

// Inbox returns the channel the stream worker writes batches into.
func (s *TickerService) Inbox() chan []*domain.Ticker {
	return s.tickerChan
}

// StartProcessor drains the inbox in a background goroutine until the context
// is canceled.
func (s *TickerService) StartProcessor(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case tickers := <-s.tickerChan:
				s.ProcessTickers(tickers)
			}
		}
	}()
}
