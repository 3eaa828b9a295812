// Package runner orchestrates the batch gate: one tree scan, every
// filename through the grammar, every sidecar through the schema
// validator, all findings aggregated into a single report.
//
// Findings are data. The runner only returns an error when the pass has
// no tree to operate on or the context is cancelled, so CI gets the
// complete picture in one run instead of failing file by file.
package runner
