package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire/internal/config"
)

// annotationTUI marks commands that hand the terminal to the browser; their
// logs must not go to stderr.
const annotationTUI = "tui"

var (
	verbose bool
	logFile string

	cfg       config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "A terminal note keeper backed by plain directories",
	Long: `Quire keeps a library of folders and notes as ordinary directories.
Each node stores its title and tags in a small YAML file; note bodies are
plain files opened in your editor.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(".env")
		if err != nil {
			fatal("Error loading .env", err)
		}
		cfg = loaded
		if logFile == "" {
			logFile = cfg.LogFile
		}

		var w io.Writer = os.Stderr
		switch {
		case logFile != "":
			f := config.LogFile(logFile)
			logCloser = f
			w = f
		case cmd.Annotations[annotationTUI] != "":
			w = nil
		}
		slog.SetDefault(config.NewLogger(w, verbose))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file (env QUIRE_LOG_FILE)")
}
