// Package naming validates filenames against the four-segment grammar
//
//	{Layer}.{Role}.{Domain}.{Extension}
//
// Validation is a pure function of the filename string and the
// taxonomy: no filesystem access, no error returns. Every violation is
// collected as an issue so a report shows the whole story at once.
//
// Extension resolution runs before segment checks because extensions
// may be dot-delimited compounds ("tar.gz", "meta.json"). The longest
// trailing token run found in the allow-list wins; when nothing
// matches, the final token is taken as an unrecognized extension so the
// rest of the name can still be judged.
//
// Structural failures (wrong segment count, empty segments) suppress
// vocabulary and lexical checks: once segment assignment is unreliable
// there is nothing trustworthy to report against.
package naming
