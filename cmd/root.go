package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var debugEnabled bool
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "webscan <url> [url...]",
	Short: "Scan websites for common security issues",
	Long: `webscan submits URLs to the WebScan API and reports what it finds:
TLS problems, missing security headers, and blocklist appearances.

The exit code is 0 unless --fail is set and the scan confirms at least
one finding at or above the --fail-on threshold. Errors in the tool or
the service itself never fail a pipeline.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

// Execute runs the CLI. Confirmed findings above the threshold exit with
// the code carried by ExitError; every other error prints to stderr and
// the process still exits 0, so a broken scan can never block a deploy.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
	}
}

// newLogger returns a silent logger unless --debug is set. Diagnostics go
// to stderr so JSON output on stdout stays parseable.
func newLogger(debug bool) *zap.SugaredLogger {
	if !debug {
		return zap.NewNop().Sugar()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func init() {
	// Assigned here rather than in the literal: the closure calls
	// applyConfigDefaults, which refers back to rootCmd, and the compiler
	// rejects that as an initialization cycle inside the initializer.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".webscan-cli")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		_ = viper.BindEnv("api_key", "WEBSCAN_API_KEY")

		applyConfigDefaults()

		logger = newLogger(debugEnabled)

		return nil
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.webscan-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "log request diagnostics to stderr")

	rootCmd.Flags().StringVarP(&cliConfig.APIKey, "key", "k", "", "API key (or set WEBSCAN_API_KEY)")
	rootCmd.Flags().BoolVar(&cliConfig.Fail, "fail", false, "exit 1 when findings reach the --fail-on threshold")
	rootCmd.Flags().StringVar(&cliConfig.FailOn, "fail-on", cliConfig.FailOn, "minimum severity that triggers --fail (high|medium|low)")
	rootCmd.Flags().BoolVarP(&cliConfig.Quiet, "quiet", "q", false, "print a single summary line per target")
	rootCmd.Flags().BoolVar(&cliConfig.JSON, "json", false, "print the raw scan result as JSON")
	rootCmd.Flags().BoolVar(&cliConfig.Share, "share", false, "create a shareable report link")
	rootCmd.Flags().IntVar(&cliConfig.TimeoutSecs, "timeout", cliConfig.TimeoutSecs, "scan timeout in seconds")
	rootCmd.Flags().StringVar(&cliConfig.Export, "export", "", "write each result to a file (.json, .md or .pdf)")
	rootCmd.Flags().IntVarP(&cliConfig.Concurrency, "concurrency", "c", cliConfig.Concurrency, "parallel scans when several URLs are given")
	rootCmd.Flags().IntVarP(&cliConfig.RateLimit, "rate", "r", cliConfig.RateLimit, "maximum scan requests per second")

	rootCmd.AddCommand(versionCmd)
}
