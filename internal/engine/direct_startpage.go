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

const startpageEndpoint = "https://www.startpage.com/sp/search"

// SearchStartpageDirect posts the query to Startpage through the browser client.
// language is a Startpage language name; empty or "all" means english.
func SearchStartpageDirect(ctx context.Context, bc *BrowserClient, query, language string) ([]SearxngResult, error) {
	if bc == nil {
		return nil, ErrNoWebBackend
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" || language == "all" {
		language = "english"
	}
	metrics.DirectStartpage.Add(1)

	form := url.Values{"query": {query}, "cat": {"web"}, "language": {language}}

	headers := ChromeHeaders()
	headers["referer"] = "https://www.startpage.com/"
	headers["content-type"] = "application/x-www-form-urlencoded"

	data, _, status, err := bc.Do("POST", startpageEndpoint, headers, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("startpage: %w", err)
	}
	if status != 200 {
		return nil, &StatusError{StatusCode: status, Provider: "startpage"}
	}

	results, err := parseStartpageHTML(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("startpage direct results", slog.Int("count", len(results)))
	return results, nil
}

// parseStartpageHTML reads result blocks; Startpage's own redirect links are skipped.
func parseStartpageHTML(data []byte) ([]SearxngResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("goquery parse: %w", err)
	}

	var results []SearxngResult
	doc.Find(".w-gl__result, .result").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.w-gl__result-title, h3 a, a.result-link").First()
		href, _ := link.Attr("href")
		title := NormalizeSpace(link.Text())
		if href == "" || title == "" || strings.Contains(href, "startpage.com/do/") {
			return
		}
		desc := s.Find(".w-gl__description, p.result-description").First()
		results = append(results, SearxngResult{
			Title:   title,
			Content: NormalizeSpace(desc.Text()),
			URL:     href,
			Score:   1.0,
		})
	})
	return results, nil
}
