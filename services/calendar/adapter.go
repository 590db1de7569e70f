package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/utils"
)

// SourceAdapter queries every configured calendar source independently and
// concurrently, enforcing a per-source timeout. One resolution call gets one
// snapshot; retries belong to the caller, caching to the layer above.
type SourceAdapter struct {
	Providers []CalendarProvider
	// Timeout bounds each individual source fetch. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is the per-source fetch deadline when none is configured.
const DefaultTimeout = 5 * time.Second

type sourceOutcome struct {
	providerID string
	intervals  []models.Interval
	err        error
}

// FetchBusy fans out across all providers and aggregates their busy
// intervals. A failing or timed-out source marks the result degraded and is
// identified in FailedSources; it never fails the call as a whole. The
// aggregate completes when every source has either responded or timed out.
func (a *SourceAdapter) FetchBusy(ctx context.Context, hostID string, from, to time.Time) FetchResult {
	logger := utils.GetLogger()

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	outcomes := make([]sourceOutcome, len(a.Providers))
	var wg sync.WaitGroup
	for i, p := range a.Providers {
		wg.Add(1)
		go func(i int, p CalendarProvider) {
			defer wg.Done()
			srcCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			ivs, err := p.BusyIntervals(srcCtx, hostID, from, to)
			outcomes[i] = sourceOutcome{providerID: p.ID(), intervals: ivs, err: err}
		}(i, p)
	}
	wg.Wait()

	var result FetchResult
	for _, out := range outcomes {
		if out.err != nil {
			logger.Warn("calendar source unavailable",
				zap.String("source", out.providerID),
				zap.String("hostID", hostID),
				zap.Error(out.err))
			result.Degraded = true
			result.FailedSources = append(result.FailedSources, out.providerID)
			continue
		}
		for _, iv := range out.intervals {
			result.Intervals = append(result.Intervals, models.CalendarBusy(iv, out.providerID))
		}
	}

	sort.Slice(result.Intervals, func(i, j int) bool {
		return result.Intervals[i].Start.Before(result.Intervals[j].Start)
	})
	sort.Strings(result.FailedSources)
	return result
}
