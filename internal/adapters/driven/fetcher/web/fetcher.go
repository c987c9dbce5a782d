package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/custodia-labs/fanout-cli/internal/core/domain"
	"github.com/custodia-labs/fanout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fanout-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultUserAgent       = "Mozilla/5.0 (compatible; FanoutMCP/1.0)"
	DefaultTimeout         = 30 * time.Second
	DefaultMinContentChars = 500

	// maxBodyBytes caps how much of a page is read.
	maxBodyBytes = 5 << 20
)

// DefaultNoiseSelectors are removed from the page before extraction.
var DefaultNoiseSelectors = []string{
	"script", "style", "noscript", "nav", "footer", "header", "aside",
	"iframe", "form", "button", "svg", ".comments", ".sidebar", "#comments",
	"[class*=shortcode]",
}

// DefaultArticleSelectors are tried in order to locate the main content.
// The body is used when none match.
var DefaultArticleSelectors = []string{
	"article", "[role=main]", ".post-content", ".entry-content",
	".article-content", "main",
}

// Config holds configuration for the web fetcher.
type Config struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds a single request (default: 30s).
	Timeout time.Duration

	// MinContentChars is the shortest accepted normalised text (default: 500).
	MinContentChars int

	// NoiseSelectors override DefaultNoiseSelectors when set.
	NoiseSelectors []string

	// ArticleSelectors override DefaultArticleSelectors when set.
	ArticleSelectors []string

	// Client replaces the HTTP client, mainly for tests.
	Client *http.Client
}

// Fetcher retrieves pages and converts them into ContentArtifacts.
type Fetcher struct {
	client    *http.Client
	userAgent string
	minChars  int
	noise     []selector
	articles  []selector
}

// NewFetcher creates a fetcher, filling zero config fields with defaults.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MinContentChars <= 0 {
		cfg.MinContentChars = DefaultMinContentChars
	}
	if len(cfg.NoiseSelectors) == 0 {
		cfg.NoiseSelectors = DefaultNoiseSelectors
	}
	if len(cfg.ArticleSelectors) == 0 {
		cfg.ArticleSelectors = DefaultArticleSelectors
	}

	noise, err := parseSelectors(cfg.NoiseSelectors)
	if err != nil {
		return nil, fmt.Errorf("noise selectors: %w", err)
	}
	articles, err := parseSelectors(cfg.ArticleSelectors)
	if err != nil {
		return nil, fmt.Errorf("article selectors: %w", err)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		minChars:  cfg.MinContentChars,
		noise:     noise,
		articles:  articles,
	}, nil
}

// Fetch retrieves url and extracts its main content.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.ContentArtifact, error) {
	logger.Debug("Fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s returned %d. Try a different URL", domain.ErrPaywalled, url, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrFetchFailed, url, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %w", domain.ErrFetchFailed, err)
	}

	artifact := f.extract(doc, url)
	if n := len([]rune(artifact.NormalizedText)); n < f.minChars {
		return nil, fmt.Errorf("%w: %d characters extracted, minimum %d required", domain.ErrContentTooShort, n, f.minChars)
	}

	logger.Debug("Fetched %q (%d words)", artifact.Title, artifact.WordCount)
	return artifact, nil
}

// extract builds the artifact from a parsed document.
func (f *Fetcher) extract(doc *html.Node, url string) *domain.ContentArtifact {
	removeMatching(doc, f.noise)

	title := ""
	if h1 := findFirst(doc, mustSelector("h1")); h1 != nil {
		title = collapseSpace(textContent(h1))
	}
	if title == "" {
		if t := findFirst(doc, mustSelector("title")); t != nil {
			title = collapseSpace(textContent(t))
		}
	}
	if title == "" {
		title = "Untitled"
	}

	description := metaContent(doc, "name", "description")
	if description == "" {
		description = metaContent(doc, "property", "og:description")
	}

	root := findFirst(doc, mustSelector("body"))
	for _, sel := range f.articles {
		if n := findFirst(doc, sel); n != nil {
			root = n
			break
		}
	}
	if root == nil {
		root = doc
	}

	text := toMarkdown(root)
	return &domain.ContentArtifact{
		URL:            url,
		Title:          title,
		NormalizedText: text,
		Description:    strings.TrimSpace(description),
		WordCount:      len(strings.Fields(text)),
	}
}
