package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rediwo/redi-records/accessor"
)

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	q := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find records and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, rootOpts, q)
		},
	}
	q.addFlags(cmd, true)

	return cmd
}

func runFind(cmd *cobra.Command, rootOpts *RootOptions, q *QueryOptions) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, rootOpts, cmd.ErrOrStderr(), true)
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

	records, err := a.Find(ctx, filters, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	q := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the records matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts, cmd.ErrOrStderr(), true)
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

			count, err := a.Count(ctx, filters, accessor.Options{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
	q.addFlags(cmd, false)

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "redi-records version %s\n", Version)
		},
	}
}
