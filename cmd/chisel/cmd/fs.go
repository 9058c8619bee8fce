package cmd

import (
	"github.com/spf13/cobra"
)

var (
	parentsOnly bool
	recursive   bool
)

var touchCmd = &cobra.Command{
	Use:   "touch <file>...",
	Short: "Create empty files, leaving existing content untouched",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := newAdapter()
		for _, path := range args {
			if err := fs.Touch(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <dir>...",
	Short: "Create directories and any missing ancestors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := newAdapter()
		for _, path := range args {
			var err error
			if parentsOnly {
				err = fs.MkdirP(path)
			} else {
				err = fs.Mkdir(path)
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Remove files, or whole directories with --recursive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := newAdapter()
		for _, path := range args {
			var err error
			if recursive {
				err = fs.RmRF(path)
			} else {
				err = fs.Rm(path)
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

var cpCmd = &cobra.Command{
	Use:   "cp <src> <dst>",
	Short: "Copy a file, creating the destination's parents as needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newAdapter().Cp(args[0], args[1])
	},
}

func init() {
	mkdirCmd.Flags().BoolVar(&parentsOnly, "parents-only", false,
		"Treat the last segment as a file name and create only its parent chain")
	rmCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove directories and their contents")

	rootCmd.AddCommand(touchCmd, mkdirCmd, rmCmd, cpCmd)
}
