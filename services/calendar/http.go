package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"slotwise/models"
)

// HTTPProvider queries a JSON busy-interval feed, the generic shape for
// providers without an ICS export. The endpoint receives host and window as
// query parameters and answers `{"busy": [{"start": ..., "end": ...}]}` with
// RFC 3339 instants.
type HTTPProvider struct {
	SourceID string
	BaseURL  string
	Client   *http.Client
}

func NewHTTPProvider(sourceID, baseURL string) *HTTPProvider {
	return &HTTPProvider{SourceID: sourceID, BaseURL: baseURL, Client: http.DefaultClient}
}

func (p *HTTPProvider) ID() string { return p.SourceID }

type busyFeedResponse struct {
	Busy []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"busy"`
}

func (p *HTTPProvider) BusyIntervals(ctx context.Context, hostID string, from, to time.Time) ([]models.Interval, error) {
	q := url.Values{}
	q.Set("host", hostID)
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/busy?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building busy request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching busy feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("busy feed returned status %d", resp.StatusCode)
	}

	var feed busyFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding busy feed: %w", err)
	}

	var out []models.Interval
	for _, b := range feed.Busy {
		if !b.Start.Before(b.End) || !b.Start.Before(to) || !b.End.After(from) {
			continue
		}
		out = append(out, models.Interval{Start: b.Start, End: b.End})
	}
	return out, nil
}
