package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fetchUserAgent = "agentpipe/0.1 (docs-reader)"
	fetchMaxBytes  = 512 * 1024
)

var (
	dropTagRe    = regexp.MustCompile(`(?is)<(script|style|nav|footer|header|aside|form)[^>]*>.*?</\w+>`)
	anyTagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)
)

// NewFetchPageTool returns the built-in fetch_page tool: fetch a URL and
// return its content as cleaned plain text. Intended for crawling
// documentation pages on behalf of an agent.
func NewFetchPageTool() *FunctionTool {
	client := &http.Client{Timeout: 20 * time.Second}
	return NewFunctionTool(
		"fetch_page",
		"Fetch a web page by URL and return its readable text content.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "Absolute http(s) URL of the page to fetch",
				},
			},
			"required": []string{"url"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			url, _ := args["url"].(string)
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return nil, fmt.Errorf("url must be absolute http(s), got %q", url)
			}
			return fetchPage(ctx, client, url)
		},
	)
}

func fetchPage(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetchMaxBytes))
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "html") {
		return cleanHTML(string(body)), nil
	}
	return string(body), nil
}

// cleanHTML strips noisy tags and markup, returning readable text.
func cleanHTML(html string) string {
	text := dropTagRe.ReplaceAllString(html, " ")
	text = anyTagRe.ReplaceAllString(text, " ")
	text = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ").Replace(text)
	lines := strings.Split(whitespaceRe.ReplaceAllString(text, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}
