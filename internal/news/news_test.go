package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TradeScope/internal/cache"
)

func rssFeed(title string, items int, start time.Time) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title>", title)
	for i := 0; i < items; i++ {
		fmt.Fprintf(&b,
			"<item><title>%s headline %d</title><link>https://example.com/%s/%d</link>"+
				"<description>body %d</description><pubDate>%s</pubDate></item>",
			title, i, title, i, i,
			start.Add(time.Duration(i)*time.Hour).Format(time.RFC1123Z))
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func newTestService(t *testing.T, feedBodies map[string]string) (*Service, map[string][]string) {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range feedBodies {
		payload := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(payload))
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	feeds := map[string][]string{"korea": nil}
	for path := range feedBodies {
		feeds["korea"] = append(feeds["korea"], server.URL+path)
	}
	return NewService(cache.NewMemory(), nil, feeds, nil), feeds
}

func TestLatestMergesAndSorts(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, map[string]string{
		"/a": rssFeed("alpha", 3, base),
		"/b": rssFeed("beta", 3, base.Add(30*time.Minute)),
	})

	articles, err := svc.Latest(context.Background(), "korea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 6 {
		t.Fatalf("articles = %d, want 6", len(articles))
	}
	for i := 1; i < len(articles); i++ {
		if articles[i].PublishedAt.After(articles[i-1].PublishedAt) {
			t.Errorf("articles not sorted newest first at %d", i)
		}
	}
	if articles[0].Source == "" {
		t.Error("source should carry the feed title")
	}
}

func TestLatestCapsAtTwenty(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, map[string]string{
		"/big": rssFeed("big", 30, base),
	})

	articles, err := svc.Latest(context.Background(), "korea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != maxArticles {
		t.Errorf("articles = %d, want %d", len(articles), maxArticles)
	}
}

func TestLatestUnknownRegion(t *testing.T) {
	svc := NewService(cache.NewMemory(), nil, map[string][]string{"us": nil}, nil)
	if _, err := svc.Latest(context.Background(), "mars"); err == nil {
		t.Fatal("expected an error for an unknown region")
	}
}

func TestLatestUsesCache(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(rssFeed("cached", 2, base)))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := NewService(cache.NewMemory(), nil,
		map[string][]string{"us": {server.URL + "/feed"}}, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.Latest(context.Background(), "us"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("feed fetched %d times, want 1", calls)
	}
}

type prefixTranslator struct{}

func (prefixTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	return "[ko] " + text, nil
}

func TestLatestTranslatesForeignArticles(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed("wires", 2, base)))
	}))
	t.Cleanup(server.Close)

	svc := NewService(cache.NewMemory(), prefixTranslator{},
		map[string][]string{"us": {server.URL}}, nil)

	articles, err := svc.Latest(context.Background(), "us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range articles {
		if a.HeadlineKo != "[ko] "+a.Headline {
			t.Errorf("headline_ko = %q, want translated %q", a.HeadlineKo, a.Headline)
		}
		if a.SummaryKo != "[ko] "+a.Summary {
			t.Errorf("summary_ko = %q, want translated %q", a.SummaryKo, a.Summary)
		}
	}
}

func TestLatestSkipsBrokenFeed(t *testing.T) {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/good", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed("good", 2, base)))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := NewService(cache.NewMemory(), nil,
		map[string][]string{"korea": {server.URL + "/good", server.URL + "/broken"}}, nil)

	articles, err := svc.Latest(context.Background(), "korea")
	if err != nil {
		t.Fatalf("one broken feed should not fail the request: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("articles = %d, want 2 from the healthy feed", len(articles))
	}
}

func TestRegions(t *testing.T) {
	svc := NewService(cache.NewMemory(), nil,
		map[string][]string{"us": nil, "korea": nil}, nil)
	got := svc.Regions()
	if len(got) != 2 || got[0] != "korea" || got[1] != "us" {
		t.Errorf("regions = %v", got)
	}
}
