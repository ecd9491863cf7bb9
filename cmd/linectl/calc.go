package main

import (
	"fmt"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/spf13/cobra"
)

func newCalcCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Production and reel calculators",
	}
	cmd.AddCommand(newCalcLogsCmd(opts), newCalcSpeedCmd(opts), newCalcRuntimeCmd(), newCalcLengthCmd())
	return cmd
}

func newCalcLogsCmd(opts *rootOptions) *cobra.Command {
	var speed, diameter, perfLength float64
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Logs per minute at a line speed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, false)
			if err != nil {
				return err
			}
			defer closeStore()

			rate, ok, err := factors.LogsPerMinute(ctx, speed, diameter, perfLength)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no usable conversion factor for %v x %v", diameter, perfLength)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f logs/min\n", rate)
			return nil
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 0, "line speed (m/min)")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "log diameter (mm)")
	cmd.Flags().Float64Var(&perfLength, "perf-length", 0, "perforation length (mm)")
	cmd.MarkFlagRequired("speed")
	cmd.MarkFlagRequired("diameter")
	cmd.MarkFlagRequired("perf-length")
	return cmd
}

func newCalcSpeedCmd(opts *rootOptions) *cobra.Command {
	var target, diameter, perfLength float64
	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Line speed needed for a target rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factors, closeStore, err := opts.openFactors(ctx, false)
			if err != nil {
				return err
			}
			defer closeStore()

			speed, ok, err := factors.RequiredSpeed(ctx, target, diameter, perfLength)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no usable conversion factor for %v x %v", diameter, perfLength)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f m/min\n", speed)
			return nil
		},
	}
	cmd.Flags().Float64Var(&target, "target", 0, "target logs per minute")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "log diameter (mm)")
	cmd.Flags().Float64Var(&perfLength, "perf-length", 0, "perforation length (mm)")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("diameter")
	cmd.MarkFlagRequired("perf-length")
	return cmd
}

func newCalcRuntimeCmd() *cobra.Command {
	var diameter, endDiameter, breakDiameter, speed, bulk float64
	var twoPly bool
	cmd := &cobra.Command{
		Use:   "runtime",
		Short: "Minutes until a parent reel runs out",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			runtime := calc.CalculateRuntime(diameter, endDiameter, speed, bulk, twoPly)
			fmt.Fprintf(out, "runtime: %s (%.0f min)\n", calc.FormatMinutes(runtime), runtime)
			if breakDiameter > 0 {
				toBreak := calc.CalculateRuntimeToBreak(diameter, breakDiameter, speed, bulk, twoPly)
				fmt.Fprintf(out, "to break: %s (%.0f min)\n", calc.FormatMinutes(toBreak), toBreak)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "current reel diameter (mm)")
	cmd.Flags().Float64Var(&endDiameter, "end-diameter", 0, "core diameter (mm)")
	cmd.Flags().Float64Var(&breakDiameter, "break-diameter", 0, "break warning diameter (mm)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "unwind speed (m/min)")
	cmd.Flags().Float64Var(&bulk, "bulk", 0, "sheet bulk (mm)")
	cmd.Flags().BoolVar(&twoPly, "two-ply", false, "two-ply parent reel")
	return cmd
}

func newCalcLengthCmd() *cobra.Command {
	var diameter, endDiameter, bulk float64
	cmd := &cobra.Command{
		Use:   "length",
		Short: "Paper length left on a parent reel",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f m\n", calc.CalculateLength(diameter, endDiameter, bulk))
			return nil
		},
	}
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "current reel diameter (mm)")
	cmd.Flags().Float64Var(&endDiameter, "end-diameter", 0, "core diameter (mm)")
	cmd.Flags().Float64Var(&bulk, "bulk", 0, "sheet bulk (mm)")
	return cmd
}
