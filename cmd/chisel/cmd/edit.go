package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/chiselfs/chisel/scan"
)

var (
	useRegexp  bool
	atLast     bool
	afterLine  bool
	blockTop   bool
	blockBot   bool
	classBot   bool
	wholeBlock bool
)

// parseTarget builds a scan target from the CLI argument, honoring --regexp.
func parseTarget(arg string) (scan.Target, error) {
	if !useRegexp {
		return scan.Text(arg), nil
	}
	re, err := regexp.Compile(arg)
	if err != nil {
		return scan.Target{}, fmt.Errorf("invalid target pattern: %w", err)
	}
	return scan.Regexp(re), nil
}

var appendCmd = &cobra.Command{
	Use:   "append <file> <line>",
	Short: "Append a line at the end of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newEngine().Append(args[0], args[1])
	},
}

var unshiftCmd = &cobra.Command{
	Use:   "unshift <file> <line>",
	Short: "Prepend a line at the start of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newEngine().Unshift(args[0], args[1])
	},
}

var injectCmd = &cobra.Command{
	Use:   "inject <file> <target> <content>",
	Short: "Insert content relative to a target line or block",
	Long: `Inserts content before (default) or after a line matching the target,
or inside the block or class-like construct the target belongs to.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, content := args[0], args[2]
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		engine := newEngine()
		switch {
		case classBot:
			return engine.InjectAtClassBottom(path, target, content)
		case blockTop:
			return engine.InjectAtBlockTop(path, target, content)
		case blockBot:
			return engine.InjectAtBlockBottom(path, target, content)
		case afterLine && atLast:
			return engine.InjectAfterLast(path, target, content)
		case afterLine:
			return engine.InjectAfter(path, target, content)
		case atLast:
			return engine.InjectBeforeLast(path, target, content)
		default:
			return engine.InjectBefore(path, target, content)
		}
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace <file> <target> <replacement>",
	Short: "Replace the first (or last) line matching a target",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		if atLast {
			return newEngine().ReplaceLastLine(args[0], target, args[2])
		}
		return newEngine().ReplaceFirstLine(args[0], target, args[2])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <target>",
	Short: "Remove the first line matching a target, or its whole block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		if wholeBlock {
			return newEngine().RemoveBlock(args[0], target)
		}
		return newEngine().RemoveLine(args[0], target)
	},
}

func init() {
	for _, c := range []*cobra.Command{injectCmd, replaceCmd, removeCmd} {
		c.Flags().BoolVar(&useRegexp, "regexp", false, "Treat the target as a regular expression")
	}
	injectCmd.Flags().BoolVar(&afterLine, "after", false, "Insert after the matching line instead of before")
	injectCmd.Flags().BoolVar(&atLast, "last", false, "Match the last occurrence instead of the first")
	injectCmd.Flags().BoolVar(&blockTop, "block-top", false, "Insert as the first line inside the matching block")
	injectCmd.Flags().BoolVar(&blockBot, "block-bottom", false, "Insert as the last line inside the matching block")
	injectCmd.Flags().BoolVar(&classBot, "class-bottom", false, "Insert as the last line of the enclosing class/module body")
	injectCmd.MarkFlagsMutuallyExclusive("block-top", "block-bottom", "class-bottom")
	replaceCmd.Flags().BoolVar(&atLast, "last", false, "Match the last occurrence instead of the first")
	removeCmd.Flags().BoolVar(&wholeBlock, "block", false, "Remove the whole block the target opens")

	rootCmd.AddCommand(appendCmd, unshiftCmd, injectCmd, replaceCmd, removeCmd)
}
