package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/internal/seed"
)

func seedCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Import apartments, buildings and lines from a YAML file",
		Long: `Import apartments, buildings and line groups from a YAML file.

Existing apartments and buildings are matched by name and reused, and line
groups that already exist are skipped, so a file can be imported repeatedly.
Line tokens that do not parse are reported and otherwise ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			client, _, logger, err := openClient(*envFile)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			importer := seed.NewImporter(client.Apartments, client.Buildings, client.Lines, logger)
			ctx := access.WithPrincipal(context.Background(), access.System())
			result, err := importer.Import(ctx, doc)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "apartments: %d created, %d reused\n", result.ApartmentsCreated, result.ApartmentsReused)
			fmt.Fprintf(out, "buildings:  %d created, %d reused\n", result.BuildingsCreated, result.BuildingsReused)
			fmt.Fprintf(out, "lines:      %d added, %d already present\n", result.LinesAdded, result.LinesSkipped)
			for _, r := range result.Rejected {
				fmt.Fprintf(out, "rejected %q in %s/%s\n", r.Token, r.Apartment, r.Building)
			}
			return nil
		},
	}
}
