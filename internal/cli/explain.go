package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	q := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the SQL a find would run",
		Long: `Print the SQL statement and bind arguments a find with the same flags
would run. The database is not contacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, rootOpts, q)
		},
	}
	q.addFlags(cmd, true)

	return cmd
}

func runExplain(cmd *cobra.Command, rootOpts *RootOptions, q *QueryOptions) error {
	s, err := openSession(cmd.Context(), rootOpts, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer s.Close()

	a, err := s.accessor(q.Resource)
	if err != nil {
		return err
	}
	filters, err := q.filters()
	if err != nil {
		return err
	}
	opts, err := q.options(a.Resource())
	if err != nil {
		return err
	}

	records, err := a.FindRelation(filters, opts)
	if err != nil {
		return err
	}
	sql, args, err := records.ToSQL()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sql)
	fmt.Fprintf(out, "-- args: %v\n", args)
	return nil
}
