package fetchers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>HUD USER What's New</title>
    <item>
      <title>FY 2025 Fair Market Rents Published</title>
      <link>https://www.huduser.gov/portal/datasets/fmr.html</link>
      <description>FY 2025 FMRs are now available.</description>
      <pubDate>Mon, 02 Sep 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>2024 PIT Counts Released</title>
      <link>https://www.hudexchange.info/resource/3031/</link>
      <description>Point-in-Time counts updated through 2024.</description>
    </item>
  </channel>
</rss>`

func TestFetchUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	fetcher := NewFeedFetcher()

	updates, err := fetcher.FetchUpdates(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchUpdates returned error: %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(updates))
	}
	if updates[0].Title != "FY 2025 Fair Market Rents Published" {
		t.Errorf("First update title mismatch: %q", updates[0].Title)
	}
	if updates[0].Published == nil {
		t.Error("Expected parsed publish date on first update")
	}
	if updates[1].Published != nil {
		t.Error("Expected nil publish date when feed omits pubDate")
	}
}

func TestFetchUpdatesBadFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFeedFetcher()

	_, err := fetcher.FetchUpdates(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for failing feed, got nil")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("Expected *NetworkError, got %T", err)
	}
}
