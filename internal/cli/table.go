package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"numerology_fortune_bot/internal/infra/fortunetable"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect fortune tables",
	}
	cmd.AddCommand(newTableCheckCmd())
	return cmd
}

func newTableCheckCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Validate a fortune table and list missing entries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := fortunetable.Load(path)
			if err != nil {
				return err
			}

			source := path
			if source == "" {
				source = "built-in table"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d entries\n", source, tbl.Len())

			missing := tbl.Missing()
			if len(missing) == 0 {
				fmt.Fprintln(out, "complete")
				return nil
			}
			fmt.Fprintf(out, "missing %d: %s\n", len(missing), strings.Join(missing, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "table", "", "fortune table YAML file, defaults to the built-in table")
	return cmd
}
