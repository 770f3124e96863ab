package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/programs"
)

// nameWidth is the maximum width of the NAME column.
const nameWidth = 20

var (
	listPage     int
	listPageSize int
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs deployed to the selected organization",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", programs.DefaultPage, "Page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", programs.DefaultPageSize, "Programs per page")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	l := &programs.Lister{Credentials: newStore(), Remote: newClient()}
	page, err := l.List(cmd.Context(), listPage, listPageSize)
	if err != nil {
		return err
	}

	if listJSON {
		return printProgramsJSON(cmd.OutOrStdout(), page.Data)
	}
	if len(page.Data) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No programs found.")
		return nil
	}
	return printProgramsTable(cmd.OutOrStdout(), page.Data)
}

func printProgramsTable(out io.Writer, progs []api.Program) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tID")
	for _, p := range progs {
		id := "-"
		if p.ID != nil {
			id = p.ID.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(valueOr(p.Name, "Unnamed"), nameWidth),
			valueOr(p.Description, "-"),
			id,
		)
	}
	return w.Flush()
}

func printProgramsJSON(out io.Writer, progs []api.Program) error {
	data, err := json.MarshalIndent(progs, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// truncate shortens s to width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
