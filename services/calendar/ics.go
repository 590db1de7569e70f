package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"slotwise/models"
)

// ICSProvider reads busy intervals from an iCalendar feed (the export URL
// most calendar products offer). Every non-cancelled VEVENT with concrete
// start and end times counts as busy; the visitor does not get to know why.
type ICSProvider struct {
	SourceID string
	// FeedURL may contain {hostID}, substituted per fetch.
	FeedURL string
	Client  *http.Client
}

func NewICSProvider(sourceID, feedURL string) *ICSProvider {
	return &ICSProvider{SourceID: sourceID, FeedURL: feedURL, Client: http.DefaultClient}
}

func (p *ICSProvider) ID() string { return p.SourceID }

func (p *ICSProvider) BusyIntervals(ctx context.Context, hostID string, from, to time.Time) ([]models.Interval, error) {
	url := strings.ReplaceAll(p.FeedURL, "{hostID}", hostID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching ICS feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ICS feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading ICS feed: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "BEGIN:VCALENDAR") {
		return nil, fmt.Errorf("invalid iCalendar payload, expected BEGIN:VCALENDAR")
	}

	return parseBusy(string(body), from, to)
}

// parseBusy decodes the feed and collects event intervals clipped against
// the query window.
func parseBusy(payload string, from, to time.Time) ([]models.Interval, error) {
	decoder := ical.NewDecoder(strings.NewReader(payload))

	var busy []models.Interval
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			if status := comp.Props.Get(ical.PropStatus); status != nil && status.Value == "CANCELLED" {
				continue
			}

			startProp := comp.Props.Get(ical.PropDateTimeStart)
			endProp := comp.Props.Get(ical.PropDateTimeEnd)
			if startProp == nil || endProp == nil {
				continue
			}
			start, err := startProp.DateTime(time.UTC)
			if err != nil {
				continue
			}
			end, err := endProp.DateTime(time.UTC)
			if err != nil {
				continue
			}

			if !start.Before(end) || !start.Before(to) || !end.After(from) {
				continue
			}
			busy = append(busy, models.Interval{Start: start, End: end})
		}
	}
	return busy, nil
}
