package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/khanhnv2901/webscan-cli/internal/shared/constants"
	"github.com/khanhnv2901/webscan-cli/scanner"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a webscan configuration file interactively",
	Long: `Walk through a guided setup and write the answers to a config file.

By default the file is written to $HOME/.webscan-cli.yaml; pass --config
to choose another location.

Examples:
  # Guided setup
  webscan init

  # Overwrite an existing file
  webscan init --force

  # Write somewhere else
  webscan init --config ./webscan.yaml`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	configPath := cfgFile
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".webscan-cli.yaml")
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	fmt.Println()
	fmt.Println("webscan Configuration Setup")
	fmt.Println("===========================")
	fmt.Println()

	keyPrompt := promptui.Prompt{
		Label: "API key (leave empty for anonymous scans)",
		Mask:  '*',
	}
	apiKey, err := keyPrompt.Run()
	if err != nil {
		return fmt.Errorf("API key input cancelled: %w", err)
	}

	fmt.Println()

	thresholds := []struct {
		Label       string
		Description string
		Value       scanner.Severity
	}{
		{"High (recommended)", "Fail only on high or critical findings", scanner.SeverityHigh},
		{"Medium", "Also fail on medium findings", scanner.SeverityMedium},
		{"Low", "Fail on anything above informational", scanner.SeverityLow},
	}

	thresholdTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	thresholdPrompt := promptui.Select{
		Label:     "Which severity should fail a pipeline when --fail is set?",
		Items:     thresholds,
		Templates: thresholdTemplates,
	}

	thresholdIdx, _, err := thresholdPrompt.Run()
	if err != nil {
		return fmt.Errorf("threshold selection cancelled: %w", err)
	}

	fmt.Println()

	timeoutPrompt := promptui.Prompt{
		Label:   "Scan timeout in seconds",
		Default: strconv.Itoa(defaultScanTimeoutSecs),
		Validate: func(input string) error {
			v, err := strconv.Atoi(input)
			if err != nil || v <= 0 {
				return fmt.Errorf("enter a positive number of seconds")
			}
			return nil
		},
	}
	timeoutRaw, err := timeoutPrompt.Run()
	if err != nil {
		return fmt.Errorf("timeout input cancelled: %w", err)
	}
	timeoutSecs, _ := strconv.Atoi(timeoutRaw)

	content := configFileContent(apiKey, string(thresholds[thresholdIdx].Value), timeoutSecs)

	if err := os.WriteFile(configPath, []byte(content), constants.SecretFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Println()
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println()
	fmt.Println("Run 'webscan https://example.com' to scan your first site.")

	return nil
}

func configFileContent(apiKey, failOn string, timeoutSecs int) string {
	var b strings.Builder
	b.WriteString("# webscan configuration\n")
	if apiKey != "" {
		fmt.Fprintf(&b, "api_key: %s\n", apiKey)
	} else {
		b.WriteString("# api_key: <your key>\n")
	}
	fmt.Fprintf(&b, "fail_on: %s\n", failOn)
	fmt.Fprintf(&b, "timeout_secs: %d\n", timeoutSecs)
	b.WriteString("# endpoint: " + scanner.DefaultBaseURL + "\n")
	b.WriteString("# share: false\n")
	b.WriteString("# concurrency: 1\n")
	b.WriteString("# rate_limit: 1\n")
	return b.String()
}

func init() {
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
