package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chiselfs/chisel/config"
	"github.com/chiselfs/chisel/internal/util"
	"github.com/chiselfs/chisel/mutate"
	"github.com/chiselfs/chisel/osfs"
)

var (
	verbose    int
	configPath string

	cfg = config.NewDefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "chisel",
	Short: "Structural line and block edits for scaffolded source trees",
	Long: `Chisel performs structural, idempotent edits to text source files:
inserting, replacing, and removing lines and whole nested blocks, plus plain
filesystem operations and scaffold manifest application.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRootConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(_ *cobra.Command, _ []string) error {
	// Load .env file if present; plain environment otherwise
	_ = godotenv.Load()

	if configPath != "" {
		loaded, err := config.NewConfigFromFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	util.InitializeLogger(logLvls[verbose-1])
	return nil
}

// newEngine builds a mutation engine over the real-disk adapter with the
// loaded config.
func newEngine() *mutate.Engine {
	return mutate.New(newAdapter(), cfg)
}

func newAdapter() *osfs.FS {
	fs := osfs.New()
	fs.SetLineTerminator(cfg.Terminator)
	return fs
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 3,
		"Log verbosity level between 1 (error) and 5 (trace)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML or JSON)")
}
