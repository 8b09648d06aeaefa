package docsearch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// PreferenceKey identifies a stored preference.
type PreferenceKey string

// Known preference keys.
const (
	KeyTheme              PreferenceKey = "theme"
	KeyAnimationsEnabled  PreferenceKey = "animationsEnabled"
	KeyRatingPromptOff    PreferenceKey = "ratingModalDisabled"
	KeyRatingDone         PreferenceKey = "ratingDone"
	KeyLastVisitedSection PreferenceKey = vaultKeyPrefix + lastVisitedName
)

// vaultKeyPrefix namespaces keys written through a Vault.
const vaultKeyPrefix = "vault_"

// lastVisitedName is the vault name of the last visited section.
const lastVisitedName = "last_visited_section"

// knownKeys lists the keys a PreferenceStore accepts.
var knownKeys = map[PreferenceKey]bool{
	KeyTheme:              true,
	KeyAnimationsEnabled:  true,
	KeyRatingPromptOff:    true,
	KeyRatingDone:         true,
	KeyLastVisitedSection: true,
}

// Validate returns EINVALID unless k is a known key or a vault key.
func (k PreferenceKey) Validate() error {
	if knownKeys[k] {
		return nil
	}
	if name, ok := strings.CutPrefix(string(k), vaultKeyPrefix); !ok || name == "" {
		return Errorf(EINVALID, "unknown preference key %q", string(k))
	}
	return nil
}

// VaultKey returns the preference key under which the vault stores name.
func VaultKey(name string) PreferenceKey {
	return PreferenceKey(vaultKeyPrefix + name)
}

// Preference is a stored key and value.
type Preference struct {
	Key       PreferenceKey
	Value     string
	UpdatedAt time.Time
}

// PreferenceStore is a client-local key-value store for preferences.
type PreferenceStore interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if no value is stored.
	Get(ctx context.Context, key PreferenceKey) (string, error)

	// Set stores value under key.
	// Returns EINVALID for unknown keys.
	Set(ctx context.Context, key PreferenceKey, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key PreferenceKey) error

	// List returns every stored preference ordered by key.
	List(ctx context.Context) ([]Preference, error)
}

// Vault stores JSON values base64-encoded in a PreferenceStore.
type Vault struct {
	store PreferenceStore
}

// NewVault returns a Vault over store.
func NewVault(store PreferenceStore) *Vault {
	return &Vault{store: store}
}

// Put encodes v and stores it under the vault key for name.
func (v *Vault) Put(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return Errorf(EINVALID, "encoding vault value %q: %v", name, err)
	}
	return v.store.Set(ctx, VaultKey(name), base64.StdEncoding.EncodeToString(data))
}

// Get decodes the value stored for name into dst. It reports false when the
// value is absent. A value that cannot be decoded returns EINVALID.
func (v *Vault) Get(ctx context.Context, name string, dst any) (bool, error) {
	encoded, err := v.store.Get(ctx, VaultKey(name))
	if ErrorCode(err) == ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, err
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return false, Errorf(EINVALID, "decoding vault value %q: %v", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, Errorf(EINVALID, "decoding vault value %q: %v", name, err)
	}
	return true, nil
}

// Names returns the names of the stored vault values in sorted order.
func (v *Vault) Names(ctx context.Context) ([]string, error) {
	prefs, err := v.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range prefs {
		if name, ok := strings.CutPrefix(string(p.Key), vaultKeyPrefix); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the value stored for name.
func (v *Vault) Delete(ctx context.Context, name string) error {
	return v.store.Delete(ctx, VaultKey(name))
}
