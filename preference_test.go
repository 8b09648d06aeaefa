package docsearch_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceKey_Validate(t *testing.T) {
	t.Parallel()

	known := []docsearch.PreferenceKey{
		docsearch.KeyTheme,
		docsearch.KeyAnimationsEnabled,
		docsearch.KeyRatingPromptOff,
		docsearch.KeyRatingDone,
		docsearch.KeyLastVisitedSection,
	}
	for _, k := range known {
		assert.NoError(t, k.Validate(), k)
	}
	assert.NoError(t, docsearch.VaultKey("bookmarks").Validate())

	for _, k := range []docsearch.PreferenceKey{"", "colour", "vault_"} {
		err := k.Validate()
		require.Error(t, err, k)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	}
}

func TestVault(t *testing.T) {
	t.Parallel()

	t.Run("round-trips values through base64 JSON", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{}
		vault := docsearch.NewVault(mock.NewMapPreferenceStore(m))
		ctx := context.Background()

		require.NoError(t, vault.Put(ctx, "last_visited_section", "#install"))

		assert.Equal(t, "IiNpbnN0YWxsIg==", m[docsearch.KeyLastVisitedSection])
		var got string
		ok, err := vault.Get(ctx, "last_visited_section", &got)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "#install", got)
	})

	t.Run("reports absent values", func(t *testing.T) {
		t.Parallel()

		vault := docsearch.NewVault(mock.NewMapPreferenceStore(map[docsearch.PreferenceKey]string{}))

		var got string
		ok, err := vault.Get(context.Background(), "missing", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects undecodable values", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{docsearch.VaultKey("broken"): "%%%"}
		vault := docsearch.NewVault(mock.NewMapPreferenceStore(m))

		var got string
		ok, err := vault.Get(context.Background(), "broken", &got)
		assert.False(t, ok)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("lists stored names", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{docsearch.KeyTheme: "light"}
		vault := docsearch.NewVault(mock.NewMapPreferenceStore(m))
		ctx := context.Background()
		require.NoError(t, vault.Put(ctx, "notes", "x"))
		require.NoError(t, vault.Put(ctx, "bookmarks", []string{"#install"}))

		names, err := vault.Names(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"bookmarks", "notes"}, names)
	})

	t.Run("propagates list errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.PreferenceStore{
			ListFn: func(context.Context) ([]docsearch.Preference, error) {
				return nil, errors.New("disk on fire")
			},
		}

		_, err := docsearch.NewVault(store).Names(context.Background())
		assert.EqualError(t, err, "disk on fire")
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.PreferenceStore{
			GetFn: func(context.Context, docsearch.PreferenceKey) (string, error) {
				return "", errors.New("disk on fire")
			},
		}
		vault := docsearch.NewVault(store)

		var got string
		_, err := vault.Get(context.Background(), "x", &got)
		assert.EqualError(t, err, "disk on fire")
	})
}

func TestSettings_Theme(t *testing.T) {
	t.Parallel()

	t.Run("defaults to dark and toggles", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{}
		settings := docsearch.NewSettings(mock.NewMapPreferenceStore(m))
		ctx := context.Background()

		theme, err := settings.Theme(ctx)
		require.NoError(t, err)
		assert.Equal(t, docsearch.ThemeDark, theme)

		theme, err = settings.ToggleTheme(ctx)
		require.NoError(t, err)
		assert.Equal(t, docsearch.ThemeLight, theme)
		assert.Equal(t, "light", m[docsearch.KeyTheme])

		theme, err = settings.ToggleTheme(ctx)
		require.NoError(t, err)
		assert.Equal(t, docsearch.ThemeDark, theme)
	})

	t.Run("falls back to default for unknown stored value", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{docsearch.KeyTheme: "sepia"}
		settings := docsearch.NewSettings(mock.NewMapPreferenceStore(m))

		theme, err := settings.Theme(context.Background())
		require.NoError(t, err)
		assert.Equal(t, docsearch.DefaultTheme, theme)
	})
}

func TestSettings_Animations(t *testing.T) {
	t.Parallel()

	m := map[docsearch.PreferenceKey]string{}
	settings := docsearch.NewSettings(mock.NewMapPreferenceStore(m))
	ctx := context.Background()

	enabled, err := settings.AnimationsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, settings.SetAnimationsEnabled(ctx, false))
	enabled, err = settings.AnimationsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Equal(t, "false", m[docsearch.KeyAnimationsEnabled])
}

func TestSettings_RatingPrompt(t *testing.T) {
	t.Parallel()

	t.Run("shows until completed", func(t *testing.T) {
		t.Parallel()

		settings := docsearch.NewSettings(mock.NewMapPreferenceStore(map[docsearch.PreferenceKey]string{}))
		ctx := context.Background()

		show, err := settings.ShouldShowRatingPrompt(ctx)
		require.NoError(t, err)
		assert.True(t, show)

		require.NoError(t, settings.CompleteRating(ctx))
		show, err = settings.ShouldShowRatingPrompt(ctx)
		require.NoError(t, err)
		assert.False(t, show)
	})

	t.Run("disable and re-enable", func(t *testing.T) {
		t.Parallel()

		settings := docsearch.NewSettings(mock.NewMapPreferenceStore(map[docsearch.PreferenceKey]string{}))
		ctx := context.Background()

		require.NoError(t, settings.SetRatingPromptEnabled(ctx, false))
		show, _ := settings.ShouldShowRatingPrompt(ctx)
		assert.False(t, show)

		require.NoError(t, settings.SetRatingPromptEnabled(ctx, true))
		show, _ = settings.ShouldShowRatingPrompt(ctx)
		assert.True(t, show)
	})

	t.Run("reset clears both flags", func(t *testing.T) {
		t.Parallel()

		m := map[docsearch.PreferenceKey]string{
			docsearch.KeyRatingDone:      "true",
			docsearch.KeyRatingPromptOff: "true",
		}
		settings := docsearch.NewSettings(mock.NewMapPreferenceStore(m))
		ctx := context.Background()

		require.NoError(t, settings.ResetRating(ctx))

		show, err := settings.ShouldShowRatingPrompt(ctx)
		require.NoError(t, err)
		assert.True(t, show)
		assert.Empty(t, m)
	})
}

func TestRating(t *testing.T) {
	t.Parallel()

	t.Run("feedback messages", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Needs improvement", docsearch.Rating(1).Feedback())
		assert.Equal(t, "Excellent!", docsearch.Rating(5).Feedback())
		assert.Empty(t, docsearch.Rating(0).Feedback())
		assert.Empty(t, docsearch.Rating(6).Feedback())
	})

	t.Run("validates range", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, docsearch.Rating(3).Validate())
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(docsearch.Rating(0).Validate()))
	})

	t.Run("builds mailto URL", func(t *testing.T) {
		t.Parallel()

		raw := docsearch.Rating(4).MailtoURL("docs@example.com", "OPN")

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "mailto", u.Scheme)
		assert.Equal(t, "docs@example.com", u.Opaque)
		assert.Equal(t, "Rating for OPN: 4/5 stars", u.Query().Get("subject"))
		assert.Contains(t, u.Query().Get("body"), "4 out of 5 stars")
	})
}

func TestDetectPlatform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsearch.PlatformWindows, docsearch.DetectPlatform("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
	assert.Equal(t, docsearch.PlatformMacOS, docsearch.DetectPlatform("Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)"))
	assert.Equal(t, docsearch.PlatformLinux, docsearch.DetectPlatform("Mozilla/5.0 (X11; Linux x86_64)"))
	assert.Equal(t, docsearch.PlatformWindows, docsearch.DetectPlatform("curl/8.0"))
}

func TestTheme_Toggle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsearch.ThemeLight, docsearch.ThemeDark.Toggle())
	assert.Equal(t, docsearch.ThemeDark, docsearch.ThemeLight.Toggle())

	_, err := docsearch.ParseTheme("blue")
	assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
}

func TestSettings_SetTheme(t *testing.T) {
	t.Parallel()

	m := map[docsearch.PreferenceKey]string{}
	s := docsearch.NewSettings(mock.NewMapPreferenceStore(m))
	ctx := context.Background()

	require.NoError(t, s.SetTheme(ctx, docsearch.ThemeLight))
	assert.Equal(t, "light", m[docsearch.KeyTheme])

	err := s.SetTheme(ctx, docsearch.Theme("sepia"))
	assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	assert.Equal(t, "light", m[docsearch.KeyTheme])
}

func TestSettings_LastVisitedSection(t *testing.T) {
	t.Parallel()

	m := map[docsearch.PreferenceKey]string{}
	s := docsearch.NewSettings(mock.NewMapPreferenceStore(m))
	ctx := context.Background()

	id, err := s.LastVisitedSection(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SetLastVisitedSection(ctx, "install"))

	id, err = s.LastVisitedSection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "install", id)
	assert.Equal(t, "Imluc3RhbGwi", m[docsearch.KeyLastVisitedSection])
}
