package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/scaffold"
	"github.com/nomenworks/nomen/internal/tui/wizards"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Scaffold a new naming tree",
	Long: `Initialize a naming tree in the specified directory.

The init command creates:
- core.config.taxonomy.yaml restating the default vocabulary
- a README named in the grammar it documents
- example subject/sidecar pairs (template dependent)

Every file a template ships conforms to the grammar, so a fresh tree
passes 'nomen check' from the first commit. The target directory must
be empty or non-existent; existing files are never overwritten.

On an interactive terminal, init opens a wizard to pick the template
and project name. Passing --template or --name (or --no-input) skips
the wizard.

Examples:
  nomen init .                          # Initialize the current directory
  nomen init ./mytree                   # Initialize ./mytree
  nomen init ./mytree --template guided # Skip the wizard

Available templates:
  basic    - Taxonomy file plus a README pair
  guided   - Adds worked examples and a naming conventions guide

Use 'nomen templates list' to see all available templates with descriptions.`,
	Args:              cobra.MinimumNArgs(0),
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

type initFlagValues struct {
	template string
	name     string
	list     bool
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initFlags.template, "template", "t", "basic",
		"Template to use (basic, guided)")
	_ = initCmd.RegisterFlagCompletionFunc("template", completeTemplateNames)
	initCmd.Flags().StringVar(&initFlags.name, "name", "",
		"Project name substituted into the template (default: target directory name)")
	initCmd.Flags().BoolVar(&initFlags.list, "list", false,
		"List available templates")
}

func runInit(cmd *cobra.Command, args []string) error {
	if initFlags.list {
		return runTemplatesList(cmd, args)
	}

	if len(args) == 0 {
		return fmt.Errorf("missing required argument: <target_path>\n\nUsage: nomen init <target_path> [flags]\n\nExamples:\n  nomen init .           # Current directory\n  nomen init ./mytree    # Subdirectory\n\nUse 'nomen init --list' to see available templates")
	}

	targetPath := args[0]
	projectName := initFlags.name
	if projectName == "" {
		projectName = defaultProjectName(targetPath)
	}
	templateName := initFlags.template

	// The wizard runs only when nothing was decided on the command line.
	flagsDecided := cmd.Flags().Changed("template") || cmd.Flags().Changed("name")
	if interactiveAllowed() && !flagsDecided {
		choices, err := templateChoices()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		result, err := wizards.RunInitWizard(projectName, choices)
		if err != nil {
			return fmt.Errorf("init wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
		templateName = result.Template
		projectName = result.ProjectName
	}

	logger := newLogger()
	scaffolder := scaffold.NewScaffolder(logger)
	if err := scaffolder.CreateProject(projectName, templateName, targetPath); err != nil {
		return err
	}

	// Everything below is decoration; the tree already exists.
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n✓ Tree initialized in %q using template %q\n", targetPath, templateName)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Tree initialized using template %q\n\n", templateName)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  nomen check .    # validate names and sidecars")
	fmt.Fprintln(os.Stderr, "  nomen build .    # write the registry manifest")

	return nil
}

// defaultProjectName derives a project name from the target path, falling
// back through the working directory for "." and "..".
func defaultProjectName(targetPath string) string {
	name := filepath.Base(targetPath)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		if cwd, err := os.Getwd(); err == nil {
			return filepath.Base(cwd)
		}
		return "project"
	}
	return name
}

// templateChoices adapts the template inventory for the wizard.
func templateChoices() ([]wizards.TemplateChoice, error) {
	names, err := scaffold.ListTemplates()
	if err != nil {
		return nil, err
	}
	descriptions := getTemplateDescriptions()

	choices := make([]wizards.TemplateChoice, 0, len(names))
	for _, name := range names {
		choice := wizards.TemplateChoice{Name: name}
		if desc, ok := descriptions[name]; ok {
			choice.Description = desc.Short
		}
		choices = append(choices, choice)
	}
	return choices, nil
}
