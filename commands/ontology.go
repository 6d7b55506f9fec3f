package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/semreview/export"
	"github.com/c360studio/semreview/graph"
	"github.com/c360studio/semreview/ontology"
)

func init() {
	Register(newOntologyCommand)
}

func newOntologyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ontology",
		Short: "Inspect and manage the review knowledge graph",
	}
	cmd.AddCommand(newOntologyInitCommand())
	cmd.AddCommand(newOntologyShowCommand())
	cmd.AddCommand(newOntologyValidateCommand())
	cmd.AddCommand(newOntologyPublishCommand())
	return cmd
}

func newOntologyInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in default ontology to the configured path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := ontology.NewStore(cfg.Ontology.Path)
			if !force {
				if _, err := store.Load(); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Ontology present at %s (use --force to overwrite)\n", cfg.Ontology.Path)
					return nil
				}
			}
			if err := store.Save(ontology.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default ontology written to %s\n", cfg.Ontology.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing ontology file")
	return cmd
}

func newOntologyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the domains, dimensions, and expertise levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Domains:")
			for _, domain := range g.Domains() {
				fmt.Fprintf(out, "  %-16s %s\n", domain.ID, domain.Name)
				if len(domain.RelevantDimensions) > 0 {
					fmt.Fprintf(out, "  %-16s weighs: %s\n", "", strings.Join(domain.RelevantDimensions, ", "))
				}
			}
			fmt.Fprintln(out, "\nImpact dimensions:")
			for _, dim := range g.ImpactDimensions() {
				fmt.Fprintf(out, "  %-26s %s\n", dim.ID, dim.Name)
			}
			fmt.Fprintln(out, "\nExpertise levels:")
			for _, level := range g.ExpertiseLevels() {
				fmt.Fprintf(out, "  %-10s confidence %d-%d\n", level.ID, level.ConfidenceRange[0], level.ConfidenceRange[1])
			}
			fmt.Fprintln(out, "\nProject types:")
			for _, pt := range g.ProjectTypes() {
				fmt.Fprintf(out, "  %-10s %s\n", pt.ID, pt.Name)
			}
			return nil
		},
	}
}

func newOntologyValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the ontology's referential integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ontology is valid: %d domains, %d dimensions\n",
				len(g.Domains()), len(g.ImpactDimensions()))
			return nil
		},
	}
}

func newOntologyPublishCommand() *cobra.Command {
	var (
		natsURL string
		subject string
		skos    bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the ontology to a knowledge-graph ingestion subject",
		Long: `Publish flattens the ontology into per-entity triple payloads and
sends them over NATS, one message per domain, subdomain, dimension,
expertise level, and project type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			g, err := loadGraph()
			if err != nil {
				return err
			}

			url := natsURL
			if url == "" {
				url = cfg.Events.URL
			}
			if url == "" {
				url = cfg.Storage.NATSURL
			}
			if url == "" {
				url = nats.DefaultURL
			}
			nc, err := nats.Connect(url)
			if err != nil {
				return fmt.Errorf("connect %s: %w", url, err)
			}
			defer nc.Close()

			profile := export.ProfileMinimal
			if skos {
				profile = export.ProfileSKOS
			}
			publisher := graph.NewPublisher(nc,
				graph.WithSubject(subject),
				graph.WithProfile(profile),
				graph.WithLogger(slog.Default()))
			published, err := publisher.PublishGraph(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d entities to %s\n", published, url)
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (default: configured events/storage URL)")
	cmd.Flags().StringVar(&subject, "subject", graph.IngestSubject, "Ingestion subject")
	cmd.Flags().BoolVar(&skos, "skos", false, "Include SKOS concept alignment")
	return cmd
}

// loadGraph loads the configured ontology, seeding defaults on first use.
func loadGraph() (*ontology.Graph, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ontology.NewStore(cfg.Ontology.Path).Load()
}
