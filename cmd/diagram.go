package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/diagram"
	"github.com/alexiusacademia/gostatics/internal/model"
)

var (
	diagramFile       string
	diagramExportFile string
	diagramASCII      bool
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Draw a stored structure with its loads and reactions",
	Long: `Draw the members, supports, hinges and loads of a stored structure.
Reactions are added when the structure can be solved.

With --ascii the reactions and the running vertical force are printed
instead of writing an image.

Examples:
  gostatics diagram -f frame.bm -o frame.svg
  gostatics diagram -f frame.bm --ascii`,
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&diagramFile, "file", "f", "", "Path to structure file [required]")
	diagramCmd.MarkFlagRequired("file")
	diagramCmd.Flags().StringVarP(&diagramExportFile, "output", "o", "structure.png", "Image file (png, svg, pdf)")
	diagramCmd.Flags().BoolVar(&diagramASCII, "ascii", false, "Print an ASCII report instead of an image")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	b, err := model.Load(diagramFile)
	if err != nil {
		return err
	}

	res, _, err := solveBeam(b, settings.Precision)
	if err != nil {
		if diagramASCII {
			return err
		}
		logger.Warn("drawing without reactions", "error", err)
	}

	out := cmd.OutOrStdout()
	if diagramASCII {
		fmt.Fprintln(out)
		fmt.Fprint(out, diagram.DrawReactionSummary(res, settings.Precision))
		fmt.Fprintln(out)
		fmt.Fprint(out, diagram.DrawShearProfile(b, res, settings.Diagram.ProfileWidth, settings.Diagram.ProfileHeight, settings.Precision))
		return nil
	}

	if err := diagram.ExportStructure(b, res, diagramExportFile, settings.Diagram.Width, settings.Diagram.Height); err != nil {
		return fmt.Errorf("failed to export diagram: %w", err)
	}
	fmt.Fprintf(out, "Diagram exported to: %s\n", diagramExportFile)
	return nil
}
