package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ddgBaseURL        = "https://html.duckduckgo.com/html/"
	searchTimeout     = 15 * time.Second
	userAgent         = "Mozilla/5.0 (compatible; Axon/1.0)"
	defaultMaxResults = 3
)

var (
	resultLinkRe    = regexp.MustCompile(`<a rel="nofollow" class="result__a" href="([^"]*)"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`<a class="result__snippet"[^>]*>(.*?)</a>`)
	htmlTagRe       = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe    = regexp.MustCompile(`&[a-z]+;|&#[0-9]+;`)
)

// DuckDuckGo queries the HTML endpoint and scrapes the result list.
// No API key required.
type DuckDuckGo struct {
	client     *http.Client
	baseURL    string
	maxResults int
	summarize  bool
	logger     *zap.Logger
}

// NewDuckDuckGo builds the live provider. When fetchSummaries is set the
// top result's page is fetched and condensed into the record summary.
func NewDuckDuckGo(maxResults int, fetchSummaries bool, logger *zap.Logger) *DuckDuckGo {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuckDuckGo{
		client:     &http.Client{Timeout: searchTimeout},
		baseURL:    ddgBaseURL,
		maxResults: maxResults,
		summarize:  fetchSummaries,
		logger:     logger,
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	searchURL := d.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: HTTP %d", query, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	hits := parseResultPage(string(body), d.maxResults)
	d.logger.Debug("web search done", zap.String("query", query), zap.Int("hits", len(hits)))

	results := make([]Result, 0, len(hits))
	for i, h := range hits {
		summary := h.title
		if h.snippet != "" {
			summary = h.title + " : " + h.snippet
		}
		if d.summarize && i == 0 && h.url != "" {
			page, err := Summarize(ctx, d.client, h.url)
			switch {
			case err != nil:
				d.logger.Debug("page summary failed", zap.String("url", h.url), zap.Error(err))
			case page != "":
				summary = page
			}
		}
		results = append(results, Result{
			Subject:    "web_search:" + query,
			Summary:    summary,
			URL:        h.url,
			Provenance: "web",
		})
	}
	return results, nil
}

type pageHit struct {
	title   string
	url     string
	snippet string
}

// parseResultPage scrapes the DuckDuckGo HTML endpoint. Links are
// redirect-wrapped; the real target sits in the uddg query parameter.
func parseResultPage(page string, max int) []pageHit {
	links := resultLinkRe.FindAllStringSubmatch(page, max)
	snippets := resultSnippetRe.FindAllStringSubmatch(page, max)

	hits := make([]pageHit, 0, len(links))
	for i, m := range links {
		if len(m) < 3 {
			continue
		}
		hit := pageHit{
			title: stripHTML(m[2]),
			url:   resolveRedirect(m[1]),
		}
		if i < len(snippets) && len(snippets[i]) >= 2 {
			hit.snippet = stripHTML(snippets[i][1])
		}
		hits = append(hits, hit)
	}
	return hits
}

func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = htmlEntityRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
