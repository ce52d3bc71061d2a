package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gostatics/internal/model"
)

var showFile string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the nodes, segments and loads of a stored structure",
	Long: `Print an indented listing of a stored structure: its nodes with their
supports and hinges, and its segments with their forces and torques.

Examples:
  gostatics show -f frame.bm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := model.Load(showFile)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), b.Describe())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFile, "file", "f", "", "Path to structure file [required]")
	showCmd.MarkFlagRequired("file")
}
