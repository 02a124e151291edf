package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/pkg/gcalendar"
	"github.com/kiri-thornalley/virtual-assistant/pkg/log"
)

// Fetcher downloads subscribed ICS feeds over HTTP.
type Fetcher struct {
	httpClient *http.Client
	l          log.Logger
}

func NewFetcher(l log.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		l:          l,
	}
}

// FetchEvents downloads one feed and returns its occurrences within
// [from, to), recurrences expanded.
func (f *Fetcher) FetchEvents(ctx context.Context, feedURL string, from, to time.Time) ([]gcalendar.Event, error) {
	body, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse ics feed %s: %w", redactURL(feedURL), err)
	}

	events := Expand(parsed, from, to)
	f.l.Debugf(ctx, "ics.Fetcher.FetchEvents: %s expanded %d events to %d occurrences", redactURL(feedURL), len(parsed), len(events))
	return events, nil
}

func (f *Fetcher) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ics feed %s: %w", redactURL(feedURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ics feed %s: %s", redactURL(feedURL), resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// redactURL strips path and query before logging. Feed URLs often embed
// private tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "(redacted)"
	}
	return u.Scheme + "://" + u.Host
}
