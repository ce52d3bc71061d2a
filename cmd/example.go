package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/model"
)

var exampleOutput string

var exampleCmd = &cobra.Command{
	Use:   "example [NAME]",
	Short: "List the built-in structures or write one to a file",
	Long: `Without a name, list the built-in example structures.

With a name, write that structure to the file given by --output, or
print it as JSON when no file is given.

Examples:
  gostatics example
  gostatics example c3-2 -o frame.bm
  gostatics example c4-1 -o frame.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)

	exampleCmd.Flags().StringVarP(&exampleOutput, "output", "o", "", "Write the example to this file (.bm, .yaml)")
}

func runExample(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Name\tDescription\n")
		fmt.Fprintf(w, "  ────\t───────────\n")
		for _, ex := range model.Examples() {
			fmt.Fprintf(w, "  %s\t%s\n", ex.Name, ex.Description)
		}
		return w.Flush()
	}

	ex, err := model.Lookup(args[0])
	if err != nil {
		return err
	}
	b, err := ex.Build()
	if err != nil {
		return err
	}

	if exampleOutput == "" {
		data, err := model.Marshal(model.Extension, model.FromBeam(b))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	if err := model.Save(exampleOutput, b); err != nil {
		return err
	}
	fmt.Fprintf(out, "Example %s written to: %s\n", ex.Name, exampleOutput)
	return nil
}
