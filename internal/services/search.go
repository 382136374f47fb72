package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/pkg/async"
)

// SearchUpdate is one delivered result set for a live car feed.
type SearchUpdate struct {
	Cars  []models.Car
	Total int
	Err   error
}

// CarLister is the single query surface a live search needs. *CarService
// satisfies it.
type CarLister interface {
	List(ctx context.Context, params CarListParams) (*CarListResult, error)
}

// LiveSearch keeps one car query live: inputs are debounced so a burst of
// keystrokes or change events runs a single query, a new dispatch cancels the
// context of the previous in-flight one, and a superseded result is
// discarded, never delivered. Stop must be called on teardown.
type LiveSearch struct {
	cars      CarLister
	debouncer *async.Debouncer
	deliver   func(SearchUpdate)

	mu     sync.Mutex
	params CarListParams

	gen atomic.Uint64
}

func NewLiveSearch(cars CarLister, quiet time.Duration, deliver func(SearchUpdate)) *LiveSearch {
	return &LiveSearch{
		cars:      cars,
		debouncer: async.NewDebouncer(quiet),
		deliver:   deliver,
	}
}

// Input replaces the current query and schedules a refresh after the quiet
// period. Rapid successive inputs collapse into one query using the latest
// parameters.
func (ls *LiveSearch) Input(params CarListParams) {
	ls.mu.Lock()
	ls.params = params
	ls.mu.Unlock()
	ls.debouncer.Trigger(ls.run)
}

// Refresh re-runs the current query, debounced. The SSE endpoint calls this
// on every record-change event so bursts of remote writes cost one query.
func (ls *LiveSearch) Refresh() {
	ls.debouncer.Trigger(ls.run)
}

func (ls *LiveSearch) run(ctx context.Context) {
	gen := ls.gen.Add(1)

	ls.mu.Lock()
	params := ls.params
	ls.mu.Unlock()

	result, err := ls.cars.List(ctx, params)

	// A result that was overtaken by a newer dispatch, or whose context was
	// cancelled, must never reach the subscriber.
	if ctx.Err() != nil || gen != ls.gen.Load() {
		return
	}
	if err != nil {
		ls.deliver(SearchUpdate{Err: err})
		return
	}
	ls.deliver(SearchUpdate{Cars: result.Cars, Total: result.Total})
}

func (ls *LiveSearch) Stop() {
	ls.debouncer.Stop()
}
