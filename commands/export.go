package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semreview/export"
)

func init() {
	Register(newExportCommand)
}

func newExportCommand() *cobra.Command {
	var (
		format  string
		outPath string
		skos    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Serialize the ontology as RDF",
		Long: `Export renders the knowledge graph in an RDF serialization so it can
be loaded into triple stores and queried with SPARQL. Formats: turtle,
ntriples, jsonld.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := export.GetFormatInfo(export.Format(format))
			if !ok {
				return fmt.Errorf("unsupported format %q (want turtle, ntriples, or jsonld)", format)
			}

			g, err := loadGraph()
			if err != nil {
				return err
			}

			profile := export.ProfileMinimal
			if skos {
				profile = export.ProfileSKOS
			}
			exporter := export.NewExporter(profile)
			exporter.AddGraph(g)
			rendered, err := exporter.Export(export.Format(format))
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ontology exported to %s (%s)\n", outPath, info.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatTurtle), "Output format: turtle, ntriples, jsonld")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&skos, "skos", false, "Include SKOS concept alignment")
	return cmd
}
