package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/diagram"
	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/model"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

var (
	solveFile        string
	solvePrecision   int
	solveShowDiagram bool
	solveExportFile  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute the reactions of a stored structure",
	Long: `Compute the support reactions, hinge forces and unknown loads of a
structure stored in a .bm (JSON) or YAML file.

The structure is split at its hinges and the equilibrium equations of
every part are solved together. Indeterminate and unstable structures
are reported as errors.

Examples:
  gostatics solve -f frame.bm
  gostatics solve -f frame.bm --precision 4 --diagram
  gostatics solve -f frame.yaml -o frame.png`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Path to structure file [required]")
	solveCmd.MarkFlagRequired("file")
	solveCmd.Flags().IntVar(&solvePrecision, "precision", structure.DefaultPrecision, "Decimal places of reported values, overriding the config")

	// Diagram options
	solveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII vertical force profile")
	solveCmd.Flags().StringVarP(&solveExportFile, "output", "o", "", "Export structure plot to file (png, svg, pdf)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	b, err := model.Load(solveFile)
	if err != nil {
		return err
	}

	precision := settings.Precision
	if cmd.Flags().Changed("precision") {
		precision = solvePrecision
	}
	if precision < 0 {
		return fmt.Errorf("precision cannot be negative: %d", precision)
	}
	res, runID, err := solveBeam(b, precision)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     STRUCTURE REACTIONS")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  File: %s\n", solveFile)
	fmt.Fprintf(out, "  Run:  %s\n", runID)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SYSTEM:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", len(b.Nodes()))
	fmt.Fprintf(w, "  Segments:\t%d\n", len(b.Segments()))
	fmt.Fprintf(w, "  Sub-beams:\t%d\n", res.SubBeams)
	fmt.Fprintf(w, "  Equilibrium equations:\t%d\n", res.Equations)
	fmt.Fprintf(w, "  Unknowns:\t%d\n", res.Unknowns)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "REACTIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tReaction\tValue\n")
	fmt.Fprintf(w, "  ─\t────────\t─────\n")
	for i, rc := range res.Reactions {
		fmt.Fprintf(w, "  %d\t%s\t%s\n", i+1, rc.Label, strconv.FormatFloat(rc.Value, 'f', precision, 64))
	}
	w.Flush()
	fmt.Fprintln(out)

	if solveShowDiagram {
		fmt.Fprintln(out, "VERTICAL FORCE PROFILE:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		fmt.Fprint(out, diagram.DrawShearProfile(b, res, settings.Diagram.ProfileWidth, settings.Diagram.ProfileHeight, precision))
		fmt.Fprintln(out)
	}

	if solveExportFile != "" {
		if err := diagram.ExportStructure(b, res, solveExportFile, settings.Diagram.Width, settings.Diagram.Height); err != nil {
			return fmt.Errorf("failed to export diagram: %w", err)
		}
		fmt.Fprintf(out, "  Diagram exported to: %s\n\n", solveExportFile)
	}
	return nil
}

// solveBeam solves b under a fresh run id that tags every log line of the run.
func solveBeam(b *structure.Beam, precision int) (*structure.Result, string, error) {
	runID := uuid.NewString()
	b.SetLogger(logger.With("run", runID))

	solver := equation.DefaultSolver()
	solver.ResidualTolerance = settings.Tolerance
	res, err := b.SolveWith(structure.SolveOptions{Precision: precision, Solver: solver})
	if err != nil {
		logger.Debug("solve failed", "run", runID, "kind", structure.KindOf(err).String())
		return nil, runID, err
	}
	logger.Debug("solve finished", "run", runID, "reactions", len(res.Reactions))
	return res, runID, nil
}
