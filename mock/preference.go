package mock

import (
	"context"
	"slices"
	"strings"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is a mock implementation of docsearch.PreferenceStore.
type PreferenceStore struct {
	GetFn    func(ctx context.Context, key docsearch.PreferenceKey) (string, error)
	SetFn    func(ctx context.Context, key docsearch.PreferenceKey, value string) error
	DeleteFn func(ctx context.Context, key docsearch.PreferenceKey) error
	ListFn   func(ctx context.Context) ([]docsearch.Preference, error)
}

func (s *PreferenceStore) Get(ctx context.Context, key docsearch.PreferenceKey) (string, error) {
	return s.GetFn(ctx, key)
}

func (s *PreferenceStore) Set(ctx context.Context, key docsearch.PreferenceKey, value string) error {
	return s.SetFn(ctx, key, value)
}

func (s *PreferenceStore) Delete(ctx context.Context, key docsearch.PreferenceKey) error {
	return s.DeleteFn(ctx, key)
}

func (s *PreferenceStore) List(ctx context.Context) ([]docsearch.Preference, error) {
	return s.ListFn(ctx)
}

// NewMapPreferenceStore returns a PreferenceStore backed by m.
// Keys are validated the same way the SQLite store validates them.
func NewMapPreferenceStore(m map[docsearch.PreferenceKey]string) *PreferenceStore {
	return &PreferenceStore{
		GetFn: func(_ context.Context, key docsearch.PreferenceKey) (string, error) {
			v, ok := m[key]
			if !ok {
				return "", docsearch.Errorf(docsearch.ENOTFOUND, "preference %q not set", key)
			}
			return v, nil
		},
		SetFn: func(_ context.Context, key docsearch.PreferenceKey, value string) error {
			if err := key.Validate(); err != nil {
				return err
			}
			m[key] = value
			return nil
		},
		DeleteFn: func(_ context.Context, key docsearch.PreferenceKey) error {
			delete(m, key)
			return nil
		},
		ListFn: func(context.Context) ([]docsearch.Preference, error) {
			prefs := make([]docsearch.Preference, 0, len(m))
			for k, v := range m {
				prefs = append(prefs, docsearch.Preference{Key: k, Value: v})
			}
			slices.SortFunc(prefs, func(a, b docsearch.Preference) int {
				return strings.Compare(string(a.Key), string(b.Key))
			})
			return prefs, nil
		},
	}
}
