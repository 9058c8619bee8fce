package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chiselfs/chisel/manifest"
)

var applyCmd = &cobra.Command{
	Use:   "apply <manifest.yaml>",
	Short: "Apply a scaffold manifest against the real filesystem",
	Long: `Reads a YAML manifest listing directories and files (path, dir, content,
perms) and creates every entry in order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		m, err := manifest.Parse(data)
		if err != nil {
			return err
		}
		return manifest.Apply(newAdapter(), m)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
