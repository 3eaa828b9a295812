package naming

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// ValidateGlob validates the base name of every regular file matched by
// a doublestar pattern (** is supported), streaming one result per path
// through fn in match order. Results are produced lazily; a non-nil
// error from fn stops the walk and is returned unchanged, and the batch
// can be restarted simply by calling ValidateGlob again.
func (v *Validator) ValidateGlob(pattern string, fn nomen.NameResultFunc) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue // Skip paths that can't be stat'd
		}
		if info.IsDir() {
			continue
		}

		result := v.Validate(filepath.Base(match))
		if err := fn(filepath.ToSlash(match), result); err != nil {
			return err
		}
	}

	return nil
}
