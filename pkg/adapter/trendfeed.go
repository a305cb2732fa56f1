package adapter

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

// TrendSource supplies raw trend records. Implementations fetch from one
// or more upstreams with partial-success semantics: a feed that errors is
// skipped, never fatal.
type TrendSource interface {
	FetchTrends(ctx context.Context) ([]model.TrendRecord, error)
}

// Feed is one RSS endpoint to poll.
type Feed struct {
	Name string
	URL  string
}

type trendFeedSource struct {
	feeds  []Feed
	client *http.Client
}

// NewTrendFeed creates an RSS-backed trend source. All feeds are tried;
// records are deduplicated by lower-cased title across feeds.
func NewTrendFeed(feeds []Feed) TrendSource {
	return &trendFeedSource{
		feeds: feeds,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// rssDocument models the subset of the trends RSS we consume, including
// the ht:approx_traffic and ht:news_item extensions.
type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title      string   `xml:"title"`
	Traffic    string   `xml:"approx_traffic"`
	NewsTitles []string `xml:"news_item>news_item_title"`
}

func (s *trendFeedSource) FetchTrends(ctx context.Context) ([]model.TrendRecord, error) {
	logger := logging.From(ctx)

	var records []model.TrendRecord
	seen := map[string]bool{}
	var lastErr error

	for _, feed := range s.feeds {
		items, err := s.fetchFeed(ctx, feed)
		if err != nil {
			// Partial-success policy: one bad feed never fails the fetch.
			logger.Warn("trend feed fetch failed", "feed", feed.Name, "error", err)
			lastErr = err
			continue
		}

		for _, item := range items {
			if item.Title == "" {
				continue
			}
			record := model.TrendRecord{
				Title:          item.Title,
				Traffic:        item.Traffic,
				Source:         model.TrendOriginFeed,
				RelatedQueries: item.NewsTitles,
			}
			if record.Traffic == "" {
				record.Traffic = "Trending"
			}
			if seen[record.Key()] {
				continue
			}
			seen[record.Key()] = true
			records = append(records, record)
		}
		logger.Debug("fetched trend feed", "feed", feed.Name, "items", len(items))
	}

	if len(records) == 0 && lastErr != nil {
		return nil, goerr.Wrap(lastErr, "all trend feeds failed")
	}
	return records, nil
}

func (s *trendFeedSource) fetchFeed(ctx context.Context, feed Feed) ([]rssItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build feed request", goerr.V("url", feed.URL))
	}
	req.Header.Set("User-Agent", "skribent trend collector")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch feed", goerr.V("url", feed.URL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from feed",
			goerr.V("url", feed.URL), goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read feed body", goerr.V("url", feed.URL))
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse feed XML", goerr.V("url", feed.URL))
	}

	return doc.Channel.Items, nil
}
