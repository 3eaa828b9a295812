package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/scaffold"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage tree templates",
	Long: `List and describe available tree templates.

Templates are the starting points for 'nomen init'. Each ships a
taxonomy file and a set of files that already conform to the grammar,
so a fresh tree validates cleanly.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available templates",
	Long:  `List all available tree templates with descriptions.`,
	RunE:  runTemplatesList,
}

var templatesDescribeCmd = &cobra.Command{
	Use:               "describe <template_name>",
	Short:             "Show detailed information about a template",
	Long:              `Show detailed information about a specific template including structure and features.`,
	Args:              RequireTemplateName,
	ValidArgsFunction: completeTemplateNames,
	RunE:              runTemplatesDescribe,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesDescribeCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Available templates:")
	fmt.Fprintln(os.Stderr)

	descriptions := getTemplateDescriptions()

	for _, t := range templates {
		desc, ok := descriptions[t]
		if !ok {
			desc = TemplateDescription{
				Short: "No description available",
			}
		}

		fmt.Fprintf(os.Stderr, "  %-12s %s\n", t, desc.Short)
		if desc.Long != "" {
			fmt.Fprintf(os.Stderr, "               %s\n", desc.Long)
		}
		if desc.BestFor != "" {
			fmt.Fprintf(os.Stderr, "               Best for: %s\n", desc.BestFor)
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Fprintln(os.Stderr, "Use: nomen init <target_path> --template <template_name>")
	return nil
}

func runTemplatesDescribe(cmd *cobra.Command, args []string) error {
	templateName := args[0]

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if !slices.Contains(templates, templateName) {
		return fmt.Errorf("template %q not found. Available templates: %v\n\nUse 'nomen templates list' to see all templates", templateName, templates)
	}

	descriptions := getTemplateDescriptions()
	desc, ok := descriptions[templateName]
	if !ok {
		return fmt.Errorf("no description available for template %q", templateName)
	}

	fmt.Fprintf(os.Stderr, "Template: %s\n", templateName)
	fmt.Fprintf(os.Stderr, "Description: %s\n", desc.Short)
	if desc.Long != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", desc.Long)
	}

	if len(desc.Structure) > 0 {
		fmt.Fprintln(os.Stderr, "\nStructure:")
		for _, item := range desc.Structure {
			fmt.Fprintf(os.Stderr, "  %s\n", item)
		}
	}

	if len(desc.Features) > 0 {
		fmt.Fprintln(os.Stderr, "\nFeatures:")
		for _, feature := range desc.Features {
			fmt.Fprintf(os.Stderr, "  - %s\n", feature)
		}
	}

	if desc.BestFor != "" {
		fmt.Fprintf(os.Stderr, "\nBest for: %s\n", desc.BestFor)
	}

	fmt.Fprintf(os.Stderr, "\nUsage:\n  nomen init ./mytree --template %s\n", templateName)

	return nil
}

// TemplateDescription contains metadata about a template
type TemplateDescription struct {
	Short     string
	Long      string
	Structure []string
	Features  []string
	BestFor   string
}

// getTemplateDescriptions returns descriptions for all templates
func getTemplateDescriptions() map[string]TemplateDescription {
	return map[string]TemplateDescription{
		"basic": {
			Short: "Taxonomy file plus a README pair",
			Long:  "A minimal tree with the default vocabulary restated and one subject/sidecar pair.",
			Structure: []string{
				"├── core.config.taxonomy.yaml",
				"├── core.readme.project.md",
				"└── core.readme.project.md.meta.json",
			},
			Features: []string{
				"Default taxonomy written out for editing",
				"README named in the grammar it documents",
				"Light-profile sidecar example",
			},
			BestFor: "Starting a tree from scratch, learning the grammar",
		},
		"guided": {
			Short: "Worked examples and a naming conventions guide",
			Long:  "Everything in basic plus a full-profile sidecar, a second layer in use, and a written guide to the grammar.",
			Structure: []string{
				"├── core.config.taxonomy.yaml",
				"├── core.readme.project.md",
				"├── core.readme.project.md.meta.json",
				"├── docs/",
				"│   ├── interface.guide.naming.md",
				"│   └── interface.guide.naming.md.meta.json",
				"├── logic.example.pipeline.txt",
				"└── logic.example.pipeline.txt.meta.json",
			},
			Features: []string{
				"Light and full profile sidecars side by side",
				"Examples across core, interface and logic layers",
				"Naming guide describing every segment",
			},
			BestFor: "Teams adopting the grammar, onboarding references",
		},
	}
}
