package engine

import "time"

// Callbacks is how a running search talks back to whoever started it. All
// calls are made one at a time from the goroutine running Search and must
// not block.
type Callbacks interface {
	// QueryInput is polled every PollInterval nodes. Returning false stops
	// the search, which then reports its best result so far.
	QueryInput() bool

	// GiveMoreTime is asked when the time budget has run out while the
	// position still looks unsettled. Zero means no extension.
	GiveMoreTime() time.Duration

	// SendOutput reports every completed iteration.
	SendOutput(SearchResult)

	// SendFinished is called exactly once per search, also when it was
	// interrupted or had no legal move to play.
	SendFinished(SearchResult)

	// SendStats is the lightweight periodic progress report.
	SendStats(SearchData)
}

const (
	PollInterval  = 2048
	StatsInterval = 65536
)

// NopCallbacks never stops the search and discards everything it reports.
type NopCallbacks struct{}

func (NopCallbacks) QueryInput() bool            { return true }
func (NopCallbacks) GiveMoreTime() time.Duration { return 0 }
func (NopCallbacks) SendOutput(SearchResult)     {}
func (NopCallbacks) SendFinished(SearchResult)   {}
func (NopCallbacks) SendStats(SearchData)        {}
