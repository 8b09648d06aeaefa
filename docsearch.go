// Package docsearch provides the client-side behaviour of a single-page
// documentation site: an in-page heading index, ranked substring search with
// debounced input, section navigation, and typed preference storage.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, slog/).
package docsearch
