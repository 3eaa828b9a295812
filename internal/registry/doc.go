// Package registry builds, writes and verifies the content-addressed
// manifest of a tree.
//
// A build is a pure function of the tree's current content: every valid
// sidecar contributes one entry carrying a deterministic UUID, the
// subject's SHA-256 and the validated metadata, ordered by subject path.
// The manifest carries no wall-clock data, so rebuilding an unchanged
// tree is byte-identical and the written file diffs cleanly in version
// control. Verification rebuilds in memory and reports drift as data.
package registry
