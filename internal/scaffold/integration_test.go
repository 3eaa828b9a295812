package scaffold_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nomenworks/nomen/internal/config"
	"github.com/nomenworks/nomen/internal/logging"
	"github.com/nomenworks/nomen/internal/registry"
	"github.com/nomenworks/nomen/internal/runner"
	"github.com/nomenworks/nomen/internal/scaffold"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// TestScaffoldedTreeLifecycle scaffolds each template onto disk and
// drives the full check, build and verify cycle over the result, the
// same path a user walks right after nomen init.
func TestScaffoldedTreeLifecycle(t *testing.T) {
	for _, template := range []string{"basic", "guided"} {
		t.Run(template, func(t *testing.T) {
			ctx := context.Background()
			target := filepath.Join(t.TempDir(), template)

			s := scaffold.NewScaffolder(logging.NewNullLogger())
			if err := s.CreateProject("demo", template, target); err != nil {
				t.Fatalf("CreateProject failed: %v", err)
			}

			// Resolve the taxonomy the way the CLI does: from the file
			// the template just scaffolded.
			t.Setenv(config.EnvConfigPath, "")
			tax, err := config.Resolve(target, "")
			if err != nil {
				t.Fatalf("Resolving scaffolded taxonomy: %v", err)
			}

			r := runner.NewRunner(tax, logging.NewNullLogger())
			report, err := r.Check(ctx, target, nomen.CheckOptions{})
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if !report.Clean() {
				t.Fatalf("Expected the scaffolded tree to pass its own check, got: %+v", report.Findings)
			}

			b := registry.NewBuilder(tax, logging.NewNullLogger())
			result, err := b.Build(ctx, target)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if !result.Clean() {
				t.Fatalf("Expected a clean build, got diagnostics: %+v", result.Diagnostics)
			}
			if len(result.Manifest.Entries) != report.SidecarsChecked {
				t.Errorf("Expected %d manifest entries, got %d", report.SidecarsChecked, len(result.Manifest.Entries))
			}

			if err := b.Write(target, result.Manifest); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			vr, err := b.Verify(ctx, target)
			if err != nil {
				t.Fatalf("Verify failed: %v", err)
			}
			if !vr.Match() {
				t.Fatalf("Expected a fresh manifest to match, got %+v", vr)
			}

			// The manifest the build wrote must not show up in later
			// passes as a file to check.
			report2, err := r.Check(ctx, target, nomen.CheckOptions{})
			if err != nil {
				t.Fatalf("Recheck failed: %v", err)
			}
			if report2.FilesChecked != report.FilesChecked {
				t.Errorf("Expected the manifest to be excluded from checks: %d files before, %d after", report.FilesChecked, report2.FilesChecked)
			}

			// Editing a subject must surface as drift on the next verify.
			readme := filepath.Join(target, "core.readme.project.md")
			if err := os.WriteFile(readme, []byte("# changed\n"), 0o644); err != nil {
				t.Fatalf("Editing readme: %v", err)
			}
			drifted, err := b.Verify(ctx, target)
			if err != nil {
				t.Fatalf("Verify after edit failed: %v", err)
			}
			if drifted.Match() {
				t.Fatal("Expected drift after editing a subject")
			}
			if want := []string{"core.readme.project.md"}; !reflect.DeepEqual(drifted.Changed, want) {
				t.Errorf("Expected changed subjects %v, got %v", want, drifted.Changed)
			}
		})
	}
}
