package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// tweetStrategy is one method of pulling tweet content. Strategies are tried
// in order and the first whose content meets minLen wins.
type tweetStrategy struct {
	name   string
	minLen int
	fetch  func(ctx context.Context, handle, id string) (*Result, error)
}

// extractTweet resolves a twitter.com / x.com URL through an ordered chain:
// the tweet-unroll API (handles long-form X Articles), a paid thread API if
// configured, and finally the public oEmbed endpoint. If every strategy
// fails the caller still gets a usable placeholder so the pipeline can
// finish and tell the listener what happened.
func (e *Extractor) extractTweet(ctx context.Context, u *url.URL) (*Result, error) {
	handle, id, err := parseTweetPath(u.Path)
	if err != nil {
		return nil, err
	}

	strategies := []tweetStrategy{
		{name: "unroll", minLen: 50, fetch: e.fetchUnrolledTweet},
	}
	if e.threadAPIURL != "" && e.threadAPIKey != "" {
		strategies = append(strategies, tweetStrategy{name: "thread", minLen: 50, fetch: e.fetchTweetThread})
	}
	strategies = append(strategies, tweetStrategy{name: "oembed", minLen: 30, fetch: e.fetchTweetOEmbed})

	var failures []string
	for _, s := range strategies {
		res, err := s.fetch(ctx, handle, id)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		if len(res.Content) < s.minLen {
			failures = append(failures, fmt.Sprintf("%s: content too short (%d chars)", s.name, len(res.Content)))
			continue
		}
		return res, nil
	}

	log.Printf("All tweet extraction methods failed for %s: %s", id, strings.Join(failures, "; "))
	return &Result{
		Title:  fmt.Sprintf("Tweet by @%s", handle),
		Author: "@" + handle,
		Content: fmt.Sprintf("We could not extract the content of this tweet by @%s automatically. "+
			"Twitter restricts access to tweet content for third-party services. "+
			"To turn this thread into a podcast, please copy the tweet text and paste it directly.", handle),
	}, nil
}

// parseTweetPath pulls the author handle and status id from a tweet URL
// path like /someone/status/1234567890.
func parseTweetPath(path string) (handle, id string, err error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 0 {
		handle = segments[0]
	}
	for i, seg := range segments {
		if (seg == "status" || seg == "statuses") && i+1 < len(segments) {
			id = strings.SplitN(segments[i+1], "?", 2)[0]
			break
		}
	}
	if id == "" {
		return "", "", fmt.Errorf("%w: no tweet status id in URL path %q", models.ErrInvalidInput, path)
	}
	return handle, id, nil
}

type unrolledTweet struct {
	Code  int `json:"code"`
	Tweet struct {
		Text   string `json:"text"`
		Author struct {
			Name       string `json:"name"`
			ScreenName string `json:"screen_name"`
		} `json:"author"`
		Quote *struct {
			Text string `json:"text"`
		} `json:"quote"`
		Article *struct {
			Title  string `json:"title"`
			Blocks []struct {
				Text string `json:"text"`
			} `json:"blocks"`
		} `json:"article"`
	} `json:"tweet"`
}

// fetchUnrolledTweet asks the unroll API for the tweet. Long-form X Articles
// come back as a list of content blocks; plain tweets as text plus any
// quoted tweet.
func (e *Extractor) fetchUnrolledTweet(ctx context.Context, handle, id string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/%s/status/%s", e.unrollAPIURL, handle, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unroll API returned status %d", models.ErrFetch, resp.StatusCode)
	}

	var payload unrolledTweet
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode unroll response: %w", err)
	}

	author := payload.Tweet.Author.Name
	if author == "" {
		author = "@" + handle
	}

	if article := payload.Tweet.Article; article != nil && len(article.Blocks) > 0 {
		var parts []string
		for _, block := range article.Blocks {
			if text := strings.TrimSpace(block.Text); text != "" {
				parts = append(parts, text)
			}
		}
		title := article.Title
		if title == "" {
			title = fmt.Sprintf("Article by @%s", handle)
		}
		return &Result{Title: title, Content: strings.Join(parts, "\n\n"), Author: author}, nil
	}

	content := strings.TrimSpace(payload.Tweet.Text)
	if payload.Tweet.Quote != nil {
		if quoted := strings.TrimSpace(payload.Tweet.Quote.Text); quoted != "" {
			content = content + "\n\n" + quoted
		}
	}
	return &Result{
		Title:   fmt.Sprintf("Tweet by @%s", handle),
		Content: content,
		Author:  author,
	}, nil
}

type tweetThread struct {
	Tweets []struct {
		Text string `json:"text"`
	} `json:"tweets"`
}

// fetchTweetThread pulls a whole thread from the configured thread API and
// concatenates the tweets. Only attempted when THREAD_API_URL and
// THREAD_API_KEY are set.
func (e *Extractor) fetchTweetThread(ctx context.Context, handle, id string) (*Result, error) {
	endpoint := fmt.Sprintf("%s?id=%s", e.threadAPIURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", e.threadAPIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: thread API returned status %d", models.ErrFetch, resp.StatusCode)
	}

	var payload tweetThread
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode thread response: %w", err)
	}

	var parts []string
	for _, tweet := range payload.Tweets {
		if text := strings.TrimSpace(tweet.Text); text != "" {
			parts = append(parts, text)
		}
	}
	content := strings.Join(parts, "\n\n")

	// Classify by volume: a long multi-tweet run reads like an article, a
	// short one like a thread, a single tweet stays a tweet.
	var title string
	switch {
	case len(content) >= 2000:
		title = fmt.Sprintf("Article by @%s", handle)
	case len(parts) > 1:
		title = fmt.Sprintf("Thread by @%s", handle)
	default:
		title = fmt.Sprintf("Tweet by @%s", handle)
	}

	return &Result{Title: title, Content: content, Author: "@" + handle}, nil
}

type oembedResponse struct {
	HTML       string `json:"html"`
	AuthorName string `json:"author_name"`
}

// fetchTweetOEmbed is the last resort: the public oEmbed endpoint returns a
// rendered blockquote whose paragraph text we lift out.
func (e *Extractor) fetchTweetOEmbed(ctx context.Context, handle, id string) (*Result, error) {
	tweetURL := fmt.Sprintf("https://twitter.com/%s/status/%s", handle, id)
	endpoint := fmt.Sprintf("%s?url=%s", e.oembedAPIURL, url.QueryEscape(tweetURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: oembed returned status %d", models.ErrFetch, resp.StatusCode)
	}

	var payload oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse oembed html: %w", err)
	}
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	author := payload.AuthorName
	if author == "" {
		author = "@" + handle
	}
	return &Result{
		Title:   fmt.Sprintf("Tweet by @%s", handle),
		Content: strings.Join(parts, "\n\n"),
		Author:  author,
	}, nil
}
