// Package watch re-runs a pass whenever the tree changes.
//
// Events are debounced so a burst of writes (editor save, git checkout,
// build output) triggers one run instead of dozens. The watcher filters
// with the same hidden-entry and ignore rules as the scanner and skips
// the registry manifest, so a build pass that rewrites the manifest
// does not retrigger itself.
package watch
