package goldmark_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goldmark"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guide = `# Installation

Download the release for your platform.

## Install on Linux

Extract the tarball.

## Install on Windows

Run the *installer*.

# Language Tour

## Variables

Declare with ` + "`let`" + `.
`

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("creates one section per top-level heading", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render([]byte(guide))
		require.NoError(t, err)

		assert.Contains(t, out, `<section class="content-section active" id="installation">`)
		assert.Contains(t, out, `<section class="content-section" id="language-tour">`)
		assert.Contains(t, out, `<a class="nav-link" data-section="language-tour" href="#language-tour">Language Tour</a>`)
		assert.Contains(t, out, `<div id="search-results"></div>`)
	})

	t.Run("output is indexable", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render([]byte(guide))
		require.NoError(t, err)
		page, err := goquery.ParsePage(out)
		require.NoError(t, err)

		idx, err := goquery.NewIndexer(page).BuildIndex(context.Background())
		require.NoError(t, err)

		entries := idx.Entries()
		require.Len(t, entries, 5)
		assert.Equal(t, "Install on Linux", entries[1].Title)
		assert.Equal(t, "Installation", entries[1].Section)
		assert.Equal(t, "install on linux extract the tarball.", entries[1].Content)
		assert.Equal(t, "language-tour", entries[4].SectionID)

		results := docsearch.Search("linux", idx)
		require.Len(t, results, 1)
		assert.Equal(t, 31, results[0].Score)
	})

	t.Run("content before the first heading becomes an introduction", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render([]byte("Welcome.\n\n## Quick start\n\nGo.\n"))
		require.NoError(t, err)

		assert.Contains(t, out, `<section class="content-section active" id="introduction">`)
		assert.NotContains(t, out, `class="nav-link"`)
	})

	t.Run("deduplicates section ids", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render([]byte("# Usage\n\na\n\n# Usage\n\nb\n"))
		require.NoError(t, err)

		assert.Contains(t, out, `id="usage"`)
		assert.Contains(t, out, `id="usage-2"`)
	})

	t.Run("empty source renders an empty page", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render(nil)
		require.NoError(t, err)

		assert.Contains(t, out, `<main id="main-content">`)
		assert.NotContains(t, out, "content-section")
	})
}
