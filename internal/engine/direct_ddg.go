package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const ddgHTMLEndpoint = "https://html.duckduckgo.com/html/"

// SearchDDGDirect queries the DuckDuckGo HTML lite endpoint through the browser client.
func SearchDDGDirect(ctx context.Context, bc *BrowserClient, query, region string) ([]SearxngResult, error) {
	if bc == nil {
		return nil, ErrNoWebBackend
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if region == "" {
		region = "wt-wt"
	}
	metrics.DirectDDGRequests.Add(1)

	form := url.Values{"q": {query}, "kl": {region}, "df": {""}}

	headers := ChromeHeaders()
	headers["referer"] = "https://html.duckduckgo.com/"
	headers["content-type"] = "application/x-www-form-urlencoded"

	data, _, status, err := bc.Do("POST", ddgHTMLEndpoint, headers, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("ddg html: %w", err)
	}
	if status != 200 {
		return nil, &StatusError{StatusCode: status, Provider: "ddg"}
	}

	results, err := parseDDGHTML(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("ddg direct results", slog.Int("count", len(results)))
	return results, nil
}

// parseDDGHTML extracts organic results from the DDG HTML lite page; ads are skipped.
func parseDDGHTML(data []byte) ([]SearxngResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("goquery parse: %w", err)
	}

	var results []SearxngResult
	doc.Find(".result, .web-result").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}
		link := s.Find("a.result__a, .result__title a, a.result-link").First()
		title := NormalizeSpace(link.Text())
		href, ok := link.Attr("href")
		if !ok || title == "" {
			return
		}
		target := ddgUnwrapURL(href)
		if target == "" {
			return
		}
		results = append(results, SearxngResult{
			Title:   title,
			Content: NormalizeSpace(s.Find(".result__snippet, .result__body").First().Text()),
			URL:     target,
			Score:   1.0,
		})
	})
	return results, nil
}

// ddgUnwrapURL extracts the target from DDG redirect wrappers
// (//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com&rut=...).
func ddgUnwrapURL(href string) string {
	if strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if target := u.Query().Get("uddg"); target != "" {
				return target
			}
		}
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return ""
}
