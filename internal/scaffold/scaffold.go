// Package scaffold creates new naming trees from embedded templates.
//
// Every file a template ships is named in the grammar it teaches, so a
// freshly scaffolded tree passes its own check from the first commit.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nomenworks/nomen/pkg/nomen"
)

//go:embed all:templates
var templatesFS embed.FS

// GetTemplatesFS returns the embedded templates filesystem. This is
// primarily useful for testing templates without filesystem I/O.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

// nonBlockingEntries are target-directory entries that do not count
// against the empty-directory requirement. A tree that has been
// git-initialized or already carries a taxonomy file is still fresh
// enough to scaffold into.
var nonBlockingEntries = map[string]bool{
	".git": true,
	".env": true,
	nomen.DefaultConfigFileName: true,
}

// Scaffolder materializes embedded templates into new trees.
type Scaffolder struct {
	logger nomen.Logger
}

// NewScaffolder creates a Scaffolder.
// Panics if logger is nil.
func NewScaffolder(logger nomen.Logger) *Scaffolder {
	if logger == nil {
		panic("scaffold.NewScaffolder: logger must not be nil")
	}
	return &Scaffolder{logger: logger}
}

// CreateProject scaffolds a new tree from a template. The target
// directory must be empty aside from entries the tool itself manages;
// existing files are never overwritten.
func (s *Scaffolder) CreateProject(projectName, templateName, targetPath string) error {
	templatePath := "templates/" + templateName
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		names, listErr := ListTemplates()
		if listErr != nil {
			return fmt.Errorf("invalid argument %q for template: %v", templateName, listErr)
		}
		return fmt.Errorf("invalid argument %q for template: must be one of %s", templateName, strings.Join(names, ", "))
	}

	blockers, err := blockingEntries(targetPath)
	if err != nil {
		return fmt.Errorf("checking target directory %s: %v", targetPath, err)
	}
	if len(blockers) > 0 {
		return fmt.Errorf("target directory %q is not empty (found %s)\n\nnomen init only scaffolds into empty directories so it never overwrites your files.\n\nOptions:\n• Pick a different location\n• Remove the existing files\n• Use a new directory name", targetPath, strings.Join(blockers, ", "))
	}

	if err := os.MkdirAll(targetPath, 0o755); err != nil {
		return fmt.Errorf("creating project directory %s: %v", targetPath, err)
	}

	s.logger.Verbose("creating tree %q at %s from template %q", projectName, targetPath, templateName)

	if err := s.copyTemplateFiles(templatePath, targetPath, projectName); err != nil {
		return fmt.Errorf("copying template files: %v", err)
	}

	s.logger.Verbose("tree created")
	return nil
}

// copyTemplateFiles walks the embedded template and writes each entry
// under the target. Files already present in the target are kept, so a
// hand-written taxonomy file survives scaffolding.
func (s *Scaffolder) copyTemplateFiles(templatePath, targetPath, projectName string) error {
	return fs.WalkDir(templatesFS, templatePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templatePath {
			return nil
		}

		relPath, err := filepath.Rel(templatePath, path)
		if err != nil {
			return err
		}
		targetFilePath := filepath.Join(targetPath, relPath)

		if d.IsDir() {
			s.logger.Verbose("creating directory %s", relPath)
			return os.MkdirAll(targetFilePath, 0o755)
		}

		if _, err := os.Stat(targetFilePath); err == nil {
			s.logger.Verbose("keeping existing %s", relPath)
			return nil
		}

		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template file %s: %v", path, err)
		}

		s.logger.Verbose("creating file %s", relPath)
		rendered := renderTemplate(string(content), projectName)
		if err := os.WriteFile(targetFilePath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing %s: %v", targetFilePath, err)
		}
		return nil
	})
}

// renderTemplate substitutes placeholder variables in template content.
func renderTemplate(content, projectName string) string {
	return strings.ReplaceAll(content, "{{PROJECT_NAME}}", projectName)
}

// ListTemplates returns the names of the embedded templates.
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}
	return templates, nil
}

// blockingEntries returns the target-directory entries that prevent
// scaffolding. A missing directory blocks nothing; it is created on
// demand.
func blockingEntries(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path exists and is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var blockers []string
	for _, entry := range entries {
		if nonBlockingEntries[entry.Name()] {
			continue
		}
		blockers = append(blockers, entry.Name())
	}
	return blockers, nil
}

// BuildFileTree renders the directory structure under rootPath in the
// familiar tree(1) format for post-init display.
func BuildFileTree(rootPath string) (string, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}

	var sb strings.Builder
	sb.WriteString(absPath + "/\n")
	if err := writeTreeLevel(&sb, rootPath, ""); err != nil {
		return "", fmt.Errorf("building file tree for %s: %v", rootPath, err)
	}
	return sb.String(), nil
}

func writeTreeLevel(sb *strings.Builder, dir, prefix string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(entries)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		sb.WriteString(prefix + branch + name + "\n")

		if entry.IsDir() {
			if err := writeTreeLevel(sb, filepath.Join(dir, entry.Name()), childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
