package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the active configuration and environment",
	Long: `Display webscan configuration information including:
  - Configuration file path
  - API endpoint and key status
  - Fail threshold and timeout in effect
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			homeDir, _ := os.UserHomeDir()
			configPath = filepath.Join(homeDir, ".webscan-cli.yaml")
		}
		configExists := "✗ (using defaults)"
		if _, err := os.Stat(configPath); err == nil {
			configExists = "✓ (exists)"
		}

		keyStatus := "not set (anonymous scans)"
		if cliConfig.APIKey != "" {
			keyStatus = "configured"
		}

		endpoint := cliConfig.Endpoint
		if endpoint == "" {
			endpoint = scanner.DefaultBaseURL
		}

		// Get output writer (for testing support)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "webscan Environment")
		fmt.Fprintln(out, "===================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Platform:           %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Version:            %s\n", Version)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Configuration File: %s %s\n", configPath, configExists)
		fmt.Fprintf(out, "API Endpoint:       %s\n", endpoint)
		fmt.Fprintf(out, "API Key:            %s\n", keyStatus)
		fmt.Fprintf(out, "Fail Threshold:     %s\n", cliConfig.FailOn)
		fmt.Fprintf(out, "Scan Timeout:       %ds\n", cliConfig.TimeoutSecs)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To change defaults, run 'webscan init' or edit the config file:")
		fmt.Fprintln(out, "  api_key: <your key>")
		fmt.Fprintln(out, "  fail_on: high")
		fmt.Fprintln(out, "  timeout_secs: 30")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
