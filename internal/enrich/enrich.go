// Package enrich fetches link previews (Open Graph metadata) for URLs
// found in a posting, so the classifier sees the landing-page title
// and description too. Every failure degrades to "no preview"; the
// caller never sees an error.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 6 * time.Second
	maxPreviewURLs = 2
	minPreviewLen  = 5

	userAgent = "Mozilla/5.0 (compatible; VagaResponder/1.0)"
)

// Scraper fetches and parses previews.
type Scraper struct {
	client *http.Client
	logger *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Scraper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FromURLs fetches previews for up to 2 URLs and joins them into a
// block suitable for appending to the message text. Empty when
// nothing useful came back.
func (s *Scraper) FromURLs(ctx context.Context, urls []string) string {
	var chunks []string
	for i, u := range urls {
		if i == maxPreviewURLs {
			break
		}
		preview, err := s.Preview(ctx, u)
		if err != nil {
			s.logger.Debug("url preview failed", zap.String("url", u), zap.Error(err))
			continue
		}
		if preview != "" {
			chunks = append(chunks, fmt.Sprintf("🔗 %s\n%s", u, preview))
		}
	}
	return strings.Join(chunks, "\n")
}

// Preview returns "title — description" for one URL, or empty when
// the page carries nothing usable.
func (s *Scraper) Preview(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := firstContent(doc,
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
	)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	desc := firstContent(doc,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
		`meta[name="description"]`,
	)

	var parts []string
	for _, p := range []string{title, desc} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := strings.Join(parts, " — ")
	if len(out) <= minPreviewLen {
		return "", nil
	}
	return out, nil
}

func firstContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
