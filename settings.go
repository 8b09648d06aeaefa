package docsearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Theme is the page colour scheme.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is used when no theme is stored.
const DefaultTheme = ThemeDark

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme returns the theme named s.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", Errorf(EINVALID, "unknown theme %q", s)
}

// Rating is a one-to-five star rating of the documentation.
type Rating int

// Rating bounds.
const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

var feedbackMessages = [...]string{
	"Needs improvement",
	"Could be better",
	"It's fine",
	"Good job!",
	"Excellent!",
}

// Validate returns EINVALID if the rating is out of range.
func (r Rating) Validate() error {
	if r < MinRating || r > MaxRating {
		return Errorf(EINVALID, "rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// Feedback returns the message shown for the rating.
func (r Rating) Feedback() string {
	if r.Validate() != nil {
		return ""
	}
	return feedbackMessages[r-1]
}

// MailtoURL returns a mailto link submitting the rating to recipient.
func (r Rating) MailtoURL(recipient, product string) string {
	subject := fmt.Sprintf("Rating for %s: %d/5 stars", product, r)
	body := fmt.Sprintf("Hello,\n\nMy rating for %s is %d out of 5 stars.\n\nAdditional feedback:\n", product, r)
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	return (&url.URL{Scheme: "mailto", Opaque: recipient, RawQuery: q.Encode()}).String()
}

// Settings reads and writes the page preferences.
type Settings struct {
	store PreferenceStore
}

// NewSettings returns Settings backed by store.
func NewSettings(store PreferenceStore) *Settings {
	return &Settings{store: store}
}

// Theme returns the stored theme, or DefaultTheme.
func (s *Settings) Theme(ctx context.Context) (Theme, error) {
	v, err := s.store.Get(ctx, KeyTheme)
	if ErrorCode(err) == ENOTFOUND {
		return DefaultTheme, nil
	} else if err != nil {
		return "", err
	}
	theme, err := ParseTheme(v)
	if err != nil {
		return DefaultTheme, nil
	}
	return theme, nil
}

// ToggleTheme flips and stores the theme, returning the new one.
func (s *Settings) ToggleTheme(ctx context.Context) (Theme, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := s.store.Set(ctx, KeyTheme, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

// SetTheme stores theme.
func (s *Settings) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	return s.store.Set(ctx, KeyTheme, string(theme))
}

// LastVisitedSection returns the section recorded by SetLastVisitedSection,
// or "" if none was recorded.
func (s *Settings) LastVisitedSection(ctx context.Context) (string, error) {
	var id string
	if _, err := NewVault(s.store).Get(ctx, lastVisitedName, &id); err != nil {
		return "", err
	}
	return id, nil
}

// SetLastVisitedSection records the section last navigated to.
func (s *Settings) SetLastVisitedSection(ctx context.Context, sectionID string) error {
	return NewVault(s.store).Put(ctx, lastVisitedName, sectionID)
}

// AnimationsEnabled reports whether scroll animations are on. Defaults to true.
func (s *Settings) AnimationsEnabled(ctx context.Context) (bool, error) {
	v, err := s.store.Get(ctx, KeyAnimationsEnabled)
	if ErrorCode(err) == ENOTFOUND {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return v != "false", nil
}

// SetAnimationsEnabled stores the animations setting.
func (s *Settings) SetAnimationsEnabled(ctx context.Context, enabled bool) error {
	return s.store.Set(ctx, KeyAnimationsEnabled, fmt.Sprint(enabled))
}

// ShouldShowRatingPrompt reports whether the rating prompt may be shown:
// it has not been disabled and no rating has been completed.
func (s *Settings) ShouldShowRatingPrompt(ctx context.Context) (bool, error) {
	off, err := s.flag(ctx, KeyRatingPromptOff)
	if err != nil {
		return false, err
	}
	done, err := s.flag(ctx, KeyRatingDone)
	if err != nil {
		return false, err
	}
	return !off && !done, nil
}

// SetRatingPromptEnabled enables or permanently disables the rating prompt.
func (s *Settings) SetRatingPromptEnabled(ctx context.Context, enabled bool) error {
	if enabled {
		return s.store.Delete(ctx, KeyRatingPromptOff)
	}
	return s.store.Set(ctx, KeyRatingPromptOff, "true")
}

// CompleteRating records that the prompt was answered or dismissed.
func (s *Settings) CompleteRating(ctx context.Context) error {
	return s.store.Set(ctx, KeyRatingDone, "true")
}

// ResetRating clears the rating state so the prompt shows again.
func (s *Settings) ResetRating(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyRatingDone); err != nil {
		return err
	}
	return s.store.Delete(ctx, KeyRatingPromptOff)
}

func (s *Settings) flag(ctx context.Context, key PreferenceKey) (bool, error) {
	v, err := s.store.Get(ctx, key)
	if ErrorCode(err) == ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return v == "true", nil
}

// Platform identifies an operating system for installation instructions.
type Platform string

// Supported platforms.
const (
	PlatformWindows Platform = "windows"
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
)

// DetectPlatform guesses the platform from a browser user agent.
// Unrecognised agents default to PlatformWindows.
func DetectPlatform(userAgent string) Platform {
	switch {
	case strings.Contains(userAgent, "Win"):
		return PlatformWindows
	case strings.Contains(userAgent, "Mac"):
		return PlatformMacOS
	case strings.Contains(userAgent, "Linux"):
		return PlatformLinux
	}
	return PlatformWindows
}
