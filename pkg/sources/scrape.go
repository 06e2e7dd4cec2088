package sources

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The helpers in this file read wallhaven.cc's public HTML, which is not an
// API and changes without notice. They return plain errors; only the
// wallhaven source turns them into an *Error.

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

var (
	detailURLPattern = regexp.MustCompile(`https?://(?:alpha\.)?wallhaven\.cc/(?:wallpaper|w)/[0-9a-z]+`)
	fullImagePattern = regexp.MustCompile(`//(?:wallpapers\.wallhaven\.cc/wallpapers|w\.wallhaven\.cc)/full/.*?"`)

	errNoDetailPages = errors.New("search results contain no wallpaper links")
	errNoFullImage   = errors.New("wallpaper page contains no full size image link")
)

// extractDetailURLs returns every wallpaper page link in body, in document order.
func extractDetailURLs(body []byte) []string {
	matches := detailURLPattern.FindAll(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, string(m))
	}
	return out
}

// dedupe drops repeated entries, keeping the first occurrence of each.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// extractFullImageURL finds the full resolution image link on a wallpaper page.
func extractFullImageURL(body []byte) (string, error) {
	m := fullImagePattern.Find(body)
	if m == nil {
		return "", errNoFullImage
	}
	// the match ends on the closing quote of the attribute
	link := string(m[:len(m)-1])
	return encodeURI("https:" + link), nil
}

// extractUploader returns the uploader's name from a wallpaper page, or "".
func extractUploader(body []byte) string {
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if name := strings.TrimSpace(doc.Find(".showcase-uploader a.username").First().Text()); name != "" {
		return name
	}
	return strings.TrimSpace(doc.Find("a.username").First().Text())
}
