// Package jd loads a single job description from a file or a web page.
package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 30 * time.Second
	// UserAgent is sent with web requests.
	UserAgent = "resume-batch/1.0"
)

// postingSelectors are tried in order for the main posting text before
// falling back to the whole body.
//
//nolint:gochecknoglobals // fixed selector list
var postingSelectors = []string{
	".job-description",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
}

// Fetch returns the job description text at input, which is either an
// http(s) URL or a file path. HTML pages are reduced to their text.
func Fetch(ctx context.Context, input string) (content string, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch JD from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch JD from file: %s", input)
		return content, err
	}

	return content, err
}

func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = strings.TrimSpace(string(data))
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	if looksLikeHTML(content) {
		content, err = HTMLToText(content)
	}

	return content, err
}

func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", UserAgent)

	var resp *http.Response
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)
	if strings.Contains(resp.Header.Get("Content-Type"), "html") || looksLikeHTML(content) {
		content, err = HTMLToText(content)
		if err != nil {
			return content, err
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// HTMLToText extracts readable text from an HTML page. Scripts, styles and
// page chrome are dropped; blank lines are removed.
func HTMLToText(html string) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find("script, style, noscript, nav, footer, header").Remove()

	body := doc.Find("body")
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			body = sel.First()
			break
		}
	}

	// Block elements would otherwise run their text together.
	body.Find("p, li, br, div, h1, h2, h3, h4, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text = cleanWhitespace(body.Text())
	return text, err
}

func looksLikeHTML(s string) (html bool) {
	head := strings.ToLower(s)
	if len(head) > 512 {
		head = head[:512]
	}
	html = strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html") || strings.Contains(head, "<body")
	return html
}

func cleanWhitespace(text string) (cleaned string) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	cleaned = strings.Join(kept, "\n")
	return cleaned
}
