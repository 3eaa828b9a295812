package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nomenworks/nomen/pkg/nomen"
)

const validSidecar = `{
  "layer": "core",
  "role": "readme",
  "domain": "project",
  "description": "Orientation notes."
}`

// writeTree materializes a fixture tree and returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// resetPassEnv pins the flag and environment state the pass commands
// read, so tests never pick up a developer's local configuration.
func resetPassEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NOMEN_CONFIG", "")
	t.Setenv("NOMEN_LOG_LEVEL", "quiet")
	rootFlags = rootFlagValues{}
}

func resetCheckFlags()  { checkFlags = checkFlagValues{format: "text"} }
func resetBuildFlags()  { buildFlags = buildFlagValues{format: "text"} }
func resetVerifyFlags() { verifyFlags = verifyFlagValues{format: "text"} }

func TestCheckCmd_ArgsValidation(t *testing.T) {
	err := checkCmd.Args(checkCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := nomen.ExitCodeForError(err)
	if exitCode != nomen.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", nomen.ExitUsageError, exitCode, err)
	}
}

func TestCheckCmd_ArgsValidation_TooMany(t *testing.T) {
	err := checkCmd.Args(checkCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
	if nomen.ExitCodeForError(err) != nomen.ExitUsageError {
		t.Errorf("Expected usage exit code, got %d", nomen.ExitCodeForError(err))
	}
}

func TestRunCheck_CleanTree(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	var out bytes.Buffer
	checkCmd.SetOut(&out)

	if err := runCheck(checkCmd, []string{root}); err != nil {
		t.Fatalf("Expected clean pass, got: %v", err)
	}
	if !strings.Contains(out.String(), "all names and sidecars conform") {
		t.Errorf("Expected conforming summary, got: %s", out.String())
	}
}

func TestRunCheck_Violations(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	root := writeTree(t, map[string]string{
		"notes.txt": "scratch\n",
	})

	checkCmd.SetOut(&bytes.Buffer{})

	err := runCheck(checkCmd, []string{root})
	if err == nil {
		t.Fatal("Expected violations error")
	}
	if !errors.Is(err, nomen.ErrViolationsFound) {
		t.Errorf("Expected ErrViolationsFound, got: %v", err)
	}
	if nomen.ExitCodeForError(err) != nomen.ExitViolations {
		t.Errorf("Expected exit code %d, got %d", nomen.ExitViolations, nomen.ExitCodeForError(err))
	}
}

func TestRunCheck_MutuallyExclusiveFlags(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	checkFlags.namesOnly = true
	checkFlags.metaOnly = true

	err := runCheck(checkCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for conflicting flags")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("Expected mutual exclusion error, got: %v", err)
	}
	if nomen.ExitCodeForError(err) != nomen.ExitUsageError {
		t.Errorf("Expected usage exit code, got %d", nomen.ExitCodeForError(err))
	}
}

func TestRunCheck_InvalidPattern(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	checkFlags.pattern = "src/[" // unterminated character class

	err := runCheck(checkCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for invalid pattern")
	}
	if nomen.ExitCodeForError(err) != nomen.ExitUsageError {
		t.Errorf("Expected usage exit code, got %d for: %v", nomen.ExitCodeForError(err), err)
	}
}

func TestRunCheck_NonexistentRoot(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()

	err := runCheck(checkCmd, []string{"/nonexistent/path/abc123"})
	if err == nil {
		t.Fatal("Expected error for nonexistent root")
	}
	if !errors.Is(err, nomen.ErrFatalIO) {
		t.Errorf("Expected ErrFatalIO, got: %v", err)
	}
	if nomen.ExitCodeForError(err) != nomen.ExitFatalIO {
		t.Errorf("Expected exit code %d, got %d", nomen.ExitFatalIO, nomen.ExitCodeForError(err))
	}
}

func TestRunCheck_JSONFormat(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	checkFlags.format = "json"
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	var out bytes.Buffer
	checkCmd.SetOut(&out)

	if err := runCheck(checkCmd, []string{root}); err != nil {
		t.Fatalf("Expected clean pass, got: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON report, got: %v\n%s", err, out.String())
	}
	if decoded["files_checked"] != float64(1) {
		t.Errorf("Expected files_checked=1, got %v", decoded["files_checked"])
	}
}

func TestRunCheck_InvalidFormat(t *testing.T) {
	resetPassEnv(t)
	resetCheckFlags()
	checkFlags.format = "xml"

	err := runCheck(checkCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for unknown format")
	}
	if nomen.ExitCodeForError(err) != nomen.ExitUsageError {
		t.Errorf("Expected usage exit code, got %d for: %v", nomen.ExitCodeForError(err), err)
	}
}

func TestRunBuild_WritesDeterministicManifest(t *testing.T) {
	resetPassEnv(t)
	resetBuildFlags()
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	buildCmd.SetOut(&bytes.Buffer{})

	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}

	manifestPath := filepath.Join(root, nomen.DefaultManifestName)
	first, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("Expected manifest to be written: %v", err)
	}
	if !strings.Contains(string(first), `"schema_version"`) {
		t.Error("Expected manifest to carry a schema version")
	}

	// Rebuilding an unchanged tree must reproduce the file byte for byte.
	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatalf("Expected rebuild to succeed, got: %v", err)
	}
	second, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Expected byte-identical manifest on rebuild")
	}
}

func TestRunBuild_Stdout(t *testing.T) {
	resetPassEnv(t)
	resetBuildFlags()
	buildFlags.stdout = true
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	var out bytes.Buffer
	buildCmd.SetOut(&out)

	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}

	var m nomen.Manifest
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("Expected stdout to carry the manifest, got: %v", err)
	}
	if len(m.Entries) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(m.Entries))
	}

	// No manifest file may appear in --stdout mode.
	if _, err := os.Stat(filepath.Join(root, nomen.DefaultManifestName)); !os.IsNotExist(err) {
		t.Error("Expected no manifest file to be written with --stdout")
	}
}

func TestRunBuild_DiagnosticsDoNotFail(t *testing.T) {
	resetPassEnv(t)
	resetBuildFlags()
	root := writeTree(t, map[string]string{
		"logic.worker.queue.py.meta.json": validSidecar, // orphan: no subject
	})

	buildCmd.SetOut(&bytes.Buffer{})

	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatalf("Expected diagnostics to be reported, not returned, got: %v", err)
	}
}

func TestVerifyCmd_ArgsValidation(t *testing.T) {
	err := verifyCmd.Args(verifyCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	if nomen.ExitCodeForError(err) != nomen.ExitUsageError {
		t.Errorf("Expected usage exit code, got %d", nomen.ExitCodeForError(err))
	}
}

func TestRunVerify_Match(t *testing.T) {
	resetPassEnv(t)
	resetBuildFlags()
	resetVerifyFlags()
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	buildCmd.SetOut(&bytes.Buffer{})
	verifyCmd.SetOut(&bytes.Buffer{})

	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatal(err)
	}
	if err := runVerify(verifyCmd, []string{root}); err != nil {
		t.Fatalf("Expected matching manifest, got: %v", err)
	}
}

func TestRunVerify_Drift(t *testing.T) {
	resetPassEnv(t)
	resetBuildFlags()
	resetVerifyFlags()
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	buildCmd.SetOut(&bytes.Buffer{})
	verifyCmd.SetOut(&bytes.Buffer{})

	if err := runBuild(buildCmd, []string{root}); err != nil {
		t.Fatal(err)
	}

	// Rewrite the subject after the manifest was written.
	subject := filepath.Join(root, "core.readme.project.md")
	if err := os.WriteFile(subject, []byte("# Project (edited)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runVerify(verifyCmd, []string{root})
	if err == nil {
		t.Fatal("Expected drift error")
	}
	if !errors.Is(err, nomen.ErrViolationsFound) {
		t.Errorf("Expected ErrViolationsFound, got: %v", err)
	}
	if !strings.Contains(err.Error(), "1 changed") {
		t.Errorf("Expected one changed subject in message, got: %v", err)
	}
	if nomen.ExitCodeForError(err) != nomen.ExitViolations {
		t.Errorf("Expected exit code %d, got %d", nomen.ExitViolations, nomen.ExitCodeForError(err))
	}
}

func TestRunVerify_MissingManifest(t *testing.T) {
	resetPassEnv(t)
	resetVerifyFlags()
	root := writeTree(t, map[string]string{
		"core.readme.project.md":           "# Project\n",
		"core.readme.project.md.meta.json": validSidecar,
	})

	verifyCmd.SetOut(&bytes.Buffer{})

	err := runVerify(verifyCmd, []string{root})
	if err == nil {
		t.Fatal("Expected error for missing manifest")
	}
	if !errors.Is(err, nomen.ErrManifestMissing) {
		t.Errorf("Expected ErrManifestMissing, got: %v", err)
	}
	if nomen.ExitCodeForError(err) != nomen.ExitViolations {
		t.Errorf("Expected exit code %d, got %d", nomen.ExitViolations, nomen.ExitCodeForError(err))
	}
}
