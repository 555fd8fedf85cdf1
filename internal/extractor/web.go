package extractor

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

const (
	// minParagraphLen filters out stray captions and nav fragments.
	minParagraphLen = 30
	// minArticleStartLen is the floor for the paragraph that marks where the
	// article proper begins.
	minArticleStartLen = 80
	// maxParagraphs bounds how much of a page we narrate.
	maxParagraphs = 50
	// minContentLen below this the structured extraction is considered to
	// have failed and we fall back to whole-document extraction.
	minContentLen = 100
	// maxFallbackLen caps the whole-document fallback text.
	maxFallbackLen = 5000
	maxTitleLen    = 100
)

var (
	titleSuffixRe = regexp.MustCompile(`\s*[|\-–—]\s*[^|\-–—]{1,60}$`)

	byLineRe = regexp.MustCompile(`[Bb]y\s+([A-Z][\w.'-]+(?:\s+[A-Z][\w.'-]+){0,3})`)

	authorBioPattern = `%s\s+is\s+(a|an|the)\s+([^.!?]{10,160})`

	tagRe = regexp.MustCompile(`<[^>]*>`)

	// Paragraphs matching these phrases are page furniture, not article text.
	boilerplatePhrases = []string{
		"is a researcher",
		"subscribe",
		"sign up",
		"newsletter",
		"related",
		"tags:",
		"cookie",
		"read more",
		"comments",
		"share this",
		"advertisement",
		"min read",
		"all rights reserved",
	}
)

// extractWebPage fetches an arbitrary article URL and extracts its title,
// author and body text. Extraction is layered: structured paragraph
// extraction first, then increasingly lossy whole-document fallbacks. It
// never gives up on a 2xx page; at worst it returns stripped page text.
func (e *Extractor) extractWebPage(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", models.ErrFetch, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	htmlText := string(body)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	title := extractTitle(doc)
	author := extractAuthor(doc)
	bio := ""
	if author != "" {
		bio = extractAuthorBio(doc, author)
	}

	content := extractParagraphs(doc)
	if author != "" {
		content = authorIntro(author, bio) + "\n\n" + content
	}

	if len(content) < minContentLen {
		log.Printf("Structured extraction too short for %s, falling back to whole-document text", rawURL)
		content = fallbackWholeDocument(htmlText, rawURL)
	}

	return &Result{Title: title, Content: content, Author: author}, nil
}

func extractTitle(doc *goquery.Document) string {
	title := collapseWhitespace(doc.Find("title").First().Text())
	// Drop trailing "| Site Name" / "- Site Name" decorations.
	title = titleSuffixRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return title
}

// extractAuthor walks an ordered list of increasingly loose heuristics.
func extractAuthor(doc *goquery.Document) string {
	if author, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		if author = strings.TrimSpace(author); author != "" {
			return author
		}
	}

	var author string
	doc.Find(`[class*="author"], [class*="byline"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseWhitespace(s.Text())
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, "By "), "by "))
		if text != "" && len(text) <= 60 {
			author = text
			return false
		}
		return true
	})
	if author != "" {
		return author
	}

	if m := byLineRe.FindStringSubmatch(doc.Text()); m != nil {
		return m[1]
	}

	if text := collapseWhitespace(doc.Find(`a[rel="author"]`).First().Text()); text != "" {
		return text
	}
	return ""
}

// extractAuthorBio looks for an "X is a ..." sentence near the author
// mention. Best effort; empty string when nothing plausible is found.
func extractAuthorBio(doc *goquery.Document, author string) string {
	pattern := fmt.Sprintf(authorBioPattern, regexp.QuoteMeta(author))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(doc.Text()); m != nil {
		return collapseWhitespace(fmt.Sprintf("%s %s", m[1], m[2]))
	}
	return ""
}

func authorIntro(author, bio string) string {
	if bio != "" {
		return fmt.Sprintf("This article was written by %s, %s.", author, bio)
	}
	return fmt.Sprintf("This article was written by %s.", author)
}

// extractParagraphs strips chrome elements, collects paragraph-level text
// blocks and keeps up to maxParagraphs starting from the first paragraph
// that looks like real article prose rather than page metadata.
func extractParagraphs(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside, form, noscript").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := collapseWhitespace(html.UnescapeString(s.Text()))
		if len(text) >= minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return ""
	}

	start := 0
	for i, p := range paragraphs {
		if isArticleStart(p) {
			start = i
			break
		}
	}

	end := start + maxParagraphs
	if end > len(paragraphs) {
		end = len(paragraphs)
	}
	return strings.Join(paragraphs[start:end], "\n\n")
}

// isArticleStart reports whether a paragraph looks like the beginning of
// the article body: long enough, starts with a capital and is not a known
// metadata phrase.
func isArticleStart(p string) bool {
	if len(p) < minArticleStartLen {
		return false
	}
	first := []rune(p)[0]
	if !unicode.IsUpper(first) {
		return false
	}
	lower := strings.ToLower(p)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// fallbackWholeDocument is the lossy last layer: readability's article
// extraction, and failing that a raw tag strip of the whole document.
func fallbackWholeDocument(htmlText, rawURL string) string {
	article, err := readability.FromReader(strings.NewReader(htmlText), nil)
	if err == nil {
		if text := collapseWhitespace(article.TextContent); len(text) >= minContentLen {
			return truncateString(text, maxFallbackLen)
		}
	} else {
		log.Printf("Readability extraction failed for %s: %v", rawURL, err)
	}

	stripped := tagRe.ReplaceAllString(htmlText, " ")
	stripped = collapseWhitespace(html.UnescapeString(stripped))
	return truncateString(stripped, maxFallbackLen)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
