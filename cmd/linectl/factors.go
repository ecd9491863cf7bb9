package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/spf13/cobra"
)

func newFactorsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect and edit the conversion factor table",
	}
	cmd.AddCommand(
		newFactorsListCmd(opts),
		newFactorsAddCmd(opts),
		newFactorsDeleteCmd(opts),
		newFactorsLockCmd(opts, "lock", true),
		newFactorsLockCmd(opts, "unlock", false),
	)
	return cmd
}

// keyFlags registers the --diameter/--perf-length pair identifying an entry.
func keyFlags(cmd *cobra.Command, diameter, perfLength *float64) {
	cmd.Flags().Float64Var(diameter, "diameter", 0, "log diameter (mm)")
	cmd.Flags().Float64Var(perfLength, "perf-length", 0, "perforation length (mm)")
	cmd.MarkFlagRequired("diameter")
	cmd.MarkFlagRequired("perf-length")
}

func newFactorsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the factor table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, false)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := factors.List(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIAMETER\tPERF LENGTH\tFACTOR\tLOCKED")
			for _, f := range list {
				fmt.Fprintf(tw, "%v\t%v\t%v\t%v\n", f.Diameter, f.PerfLength, f.Factor, f.IsLocked)
			}
			return tw.Flush()
		},
	}
}

func newFactorsAddCmd(opts *rootOptions) *cobra.Command {
	var f entity.ConversionFactor
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, true)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := factors.Add(ctx, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %v x %v = %v\n", f.Diameter, f.PerfLength, f.Factor)
			return nil
		},
	}
	keyFlags(cmd, &f.Diameter, &f.PerfLength)
	cmd.Flags().Float64Var(&f.Factor, "factor", 0, "meters of line travel per log")
	cmd.Flags().BoolVar(&f.IsLocked, "locked", false, "protect the entry from edits")
	cmd.MarkFlagRequired("factor")
	return cmd
}

func newFactorsDeleteCmd(opts *rootOptions) *cobra.Command {
	var diameter, perfLength float64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an unlocked entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, true)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := factors.Delete(ctx, diameter, perfLength); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %v x %v\n", diameter, perfLength)
			return nil
		},
	}
	keyFlags(cmd, &diameter, &perfLength)
	return cmd
}

func newFactorsLockCmd(opts *rootOptions, use string, locked bool) *cobra.Command {
	var diameter, perfLength float64
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, true)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := factors.SetLocked(ctx, diameter, perfLength, locked); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%sed %v x %v\n", use, diameter, perfLength)
			return nil
		},
	}
	keyFlags(cmd, &diameter, &perfLength)
	return cmd
}
