package fetchers

import (
	"context"
	"time"

	"hudhousing/internal/logger"

	"github.com/mmcdole/gofeed"
)

// Update is one dataset announcement from the HUD USER feed
type Update struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Published   *time.Time `json:"published,omitempty"`
}

// FeedFetcher retrieves dataset update announcements from the HUD USER
// "What's New" RSS feed
type FeedFetcher struct {
	parser *gofeed.Parser
	log    *logger.Logger
}

// NewFeedFetcher creates a new feed fetcher instance
func NewFeedFetcher() *FeedFetcher {
	return &FeedFetcher{
		parser: gofeed.NewParser(),
		log:    logger.WithComponent("feed"),
	}
}

// FetchUpdates parses the announcements feed at the given URL
func (f *FeedFetcher) FetchUpdates(ctx context.Context, feedURL string) ([]Update, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, &NetworkError{URL: feedURL, Err: err}
	}

	updates := make([]Update, 0, len(feed.Items))
	for _, item := range feed.Items {
		updates = append(updates, Update{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Published:   item.PublishedParsed,
		})
	}

	f.log.Infof("Fetched %d feed updates", len(updates))
	return updates, nil
}
