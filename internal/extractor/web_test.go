package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
	<title>How Compilers Optimize Loops | Example Blog</title>
	<meta name="author" content="Jane Doe">
	<style>body { color: red; }</style>
	<script>console.log("tracking");</script>
</head>
<body>
	<nav><p>Home News About Contact and plenty of other navigation text here</p></nav>
	<article>
		<p>Subscribe to our newsletter for weekly compiler content delivered straight to your inbox every Monday.</p>
		<p>Loop optimization is one of the oldest and most effective areas of compiler engineering, dating back to the earliest Fortran compilers.</p>
		<p>Modern compilers apply unrolling, fusion and invariant hoisting, often in combination, guided by cost models tuned per target architecture.</p>
		<p>short one</p>
		<p>Jane Doe is a compiler engineer who has worked on optimizing backends for fifteen years.</p>
	</article>
	<footer><p>All rights reserved by Example Blog and its affiliates worldwide forever</p></footer>
</body>
</html>`

func TestExtractWebPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		fmt.Fprint(w, articlePage)
	}))
	defer srv.Close()

	e := New(&config.Config{})
	res, err := e.Extract(context.Background(), srv.URL, "")
	require.NoError(t, err)

	// Site suffix stripped from the title.
	assert.Equal(t, "How Compilers Optimize Loops", res.Title)
	assert.Equal(t, "Jane Doe", res.Author)

	// The newsletter paragraph is boilerplate; the article starts at the
	// loop-optimization paragraph.
	assert.Contains(t, res.Content, "Loop optimization is one of the oldest")
	assert.Contains(t, res.Content, "unrolling, fusion and invariant hoisting")
	assert.NotContains(t, res.Content, "short one")
	assert.NotContains(t, res.Content, "console.log")

	// Author intro is prepended, using the bio found near the mention.
	assert.True(t, strings.HasPrefix(res.Content, "This article was written by Jane Doe"))
}

func TestExtractWebPageFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := New(&config.Config{})
	_, err := e.Extract(context.Background(), srv.URL, "")
	assert.ErrorIs(t, err, models.ErrFetch)
}

func TestExtractWebPageFallsBackToWholeDocument(t *testing.T) {
	// No <p> tags at all, so structured extraction comes up empty and the
	// whole-document fallback has to carry it.
	page := `<html><head><title>Bare Page</title></head><body>
		<div>` + strings.Repeat("Plain divs with readable text and no paragraph markup at all. ", 10) + `</div>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	e := New(&config.Config{})
	res, err := e.Extract(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "Bare Page", res.Title)
	assert.Contains(t, res.Content, "Plain divs with readable text")
	assert.LessOrEqual(t, len(res.Content), 5000)
}

func TestExtractTitleSuffixVariants(t *testing.T) {
	for _, title := range []string{
		"The Article - Some Site",
		"The Article | Some Site",
	} {
		page := fmt.Sprintf("<html><head><title>%s</title></head><body><p>%s</p></body></html>",
			title, strings.Repeat("Body text for the page under test. ", 10))
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, page)
		}))

		e := New(&config.Config{})
		res, err := e.Extract(context.Background(), srv.URL, "")
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, "The Article", res.Title)
	}
}
