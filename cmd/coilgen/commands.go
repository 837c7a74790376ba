package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type coilFlags struct {
	lx, by, width, gap float64
}

func (f *coilFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lx, "lx", 10, "outer width Lx in mm")
	cmd.Flags().Float64Var(&f.by, "by", 6, "outer height By in mm")
	cmd.Flags().Float64Var(&f.width, "width", 0.15, "trace width in mm")
	cmd.Flags().Float64Var(&f.gap, "gap", 0.15, "gap between turns in mm")
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "coilgen",
		Short:         "Generate rectangular spiral coil coordinates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(newGenerateCmd(), newMaxTurnsCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		dims      coilFlags
		turns     int
		inner     bool
		format    string
		out       string
		precision int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the coil corners as csv, txt, png or svg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			spec := coil.Spec{
				OuterWidth:   dims.lx,
				OuterHeight:  dims.by,
				TraceWidth:   dims.width,
				Gap:          dims.gap,
				Turns:        turns,
				IncludeInner: inner,
			}
			c, err := coil.Generate(spec)
			if err != nil {
				return err
			}

			opts := export.DefaultOptions()
			opts.Precision = precision

			if out == "-" {
				return writeExport(cmd.OutOrStdout(), c, f, opts)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := writeExport(file, c, f, opts); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}

			log.Info().Str("file", out).Str("format", string(f)).Int("points", len(c.Outer)+len(c.Inner)).Msg("Wrote coil export")
			return nil
		},
	}

	dims.register(cmd)
	cmd.Flags().IntVar(&turns, "turns", 4, "number of turns")
	cmd.Flags().BoolVar(&inner, "inner", false, "include the inner edge of the trace")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, txt, png or svg")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&precision, "precision", export.DefaultPrecision, "csv decimal places")

	return cmd
}

func newMaxTurnsCmd() *cobra.Command {
	var dims coilFlags

	cmd := &cobra.Command{
		Use:   "max-turns",
		Short: "Print the largest turn count that fits the outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := coil.Spec{OuterWidth: dims.lx, OuterHeight: dims.by, TraceWidth: dims.width, Gap: dims.gap, Turns: 1}
			if err := spec.Validate(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), coil.MaxTurns(dims.lx, dims.by, dims.width, dims.gap))
			return err
		},
	}

	dims.register(cmd)
	return cmd
}

func writeExport(w io.Writer, c *coil.Coil, f export.Format, opts export.Options) error {
	bw := bufio.NewWriter(w)
	if err := export.Write(bw, c, f, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", f, err)
	}
	return bw.Flush()
}
