package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

func TestApplyIntDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("timeout", 0, "")

	var applied int
	applyIntDefault(flags, "timeout", 15, func(v int) {
		applied = v
	})
	if applied != 15 {
		t.Fatalf("expected setter to receive 15, got %d", applied)
	}

	// When flag already set, setter should not run.
	if err := flags.Set("timeout", "7"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	applied = 0
	applyIntDefault(flags, "timeout", 20, func(v int) {
		applied = v
	})
	if applied != 0 {
		t.Fatalf("setter should not run when flag overridden, got %d", applied)
	}
}

func TestApplyBoolDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("share", false, "")

	applied := false
	applyBoolDefault(flags, "share", true, func(v bool) {
		applied = v
	})
	if !applied {
		t.Fatal("expected setter to run with true")
	}

	if err := flags.Set("share", "false"); err != nil {
		t.Fatalf("failed to set bool flag: %v", err)
	}
	applied = true
	applyBoolDefault(flags, "share", true, func(v bool) {
		applied = v
	})
	if !applied {
		t.Fatalf("setter should not change value when flag already set")
	}
}

func TestSetStringFlagIfUnset(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("key", "", "")

	setStringFlagIfUnset(flags, "key", "config-key")
	if got := flags.Lookup("key").Value.String(); got != "config-key" {
		t.Fatalf("expected key to be config default, got %s", got)
	}

	if err := flags.Set("key", "flag-key"); err != nil {
		t.Fatalf("failed to set key: %v", err)
	}
	setStringFlagIfUnset(flags, "key", "other-key")
	if got := flags.Lookup("key").Value.String(); got != "flag-key" {
		t.Fatalf("expected key to remain flag-key, got %s", got)
	}
}

func TestNewCLIConfigDefaults(t *testing.T) {
	cfg := newCLIConfig()
	if cfg.TimeoutSecs != defaultScanTimeoutSecs {
		t.Fatalf("unexpected timeout default: %d", cfg.TimeoutSecs)
	}
	if cfg.FailOn != string(scanner.DefaultFailThreshold) {
		t.Fatalf("unexpected fail-on default: %s", cfg.FailOn)
	}
	if cfg.Endpoint != scanner.DefaultBaseURL {
		t.Fatalf("unexpected endpoint default: %s", cfg.Endpoint)
	}
	if cfg.Concurrency != defaultConcurrency {
		t.Fatalf("unexpected concurrency default: %d", cfg.Concurrency)
	}
	if cfg.RateLimit != defaultRateLimit {
		t.Fatalf("unexpected rate limit default: %d", cfg.RateLimit)
	}
	if cfg.Fail || cfg.Share || cfg.Quiet || cfg.JSON {
		t.Fatalf("expected all boolean modes off by default: %+v", cfg)
	}
}

func TestLoadDefaultOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("api_key", "cfg-key")
	viper.Set("endpoint", "https://api.staging.webscan.dev")
	viper.Set("timeout_secs", 45)
	viper.Set("fail_on", "medium")
	viper.Set("share", true)
	viper.Set("concurrency", 4)
	viper.Set("rate_limit", 2)

	overrides := loadDefaultOverrides()

	if overrides.APIKey != "cfg-key" {
		t.Fatalf("expected api key override, got %q", overrides.APIKey)
	}
	if overrides.Endpoint != "https://api.staging.webscan.dev" {
		t.Fatalf("expected endpoint override, got %q", overrides.Endpoint)
	}
	if overrides.TimeoutSecs == nil || *overrides.TimeoutSecs != 45 {
		t.Fatalf("expected timeout override 45, got %+v", overrides.TimeoutSecs)
	}
	if overrides.FailOn != "medium" {
		t.Fatalf("expected fail-on override medium, got %s", overrides.FailOn)
	}
	if overrides.Share == nil || !*overrides.Share {
		t.Fatalf("expected share override true, got %+v", overrides.Share)
	}
	if overrides.Concurrency == nil || *overrides.Concurrency != 4 {
		t.Fatalf("expected concurrency override 4, got %+v", overrides.Concurrency)
	}
	if overrides.RateLimit == nil || *overrides.RateLimit != 2 {
		t.Fatalf("expected rate limit override 2, got %+v", overrides.RateLimit)
	}
}

func TestLoadDefaultOverridesEmptyConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	overrides := loadDefaultOverrides()
	if overrides.APIKey != "" || overrides.Endpoint != "" || overrides.FailOn != "" {
		t.Fatalf("expected no string overrides, got %+v", overrides)
	}
	if overrides.TimeoutSecs != nil || overrides.Share != nil || overrides.Concurrency != nil || overrides.RateLimit != nil {
		t.Fatalf("expected no pointer overrides, got %+v", overrides)
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		resetScanConfig(t)
	})

	resetScanConfig(t)

	viper.Set("api_key", "cfg-key")
	viper.Set("endpoint", "https://api.staging.webscan.dev")
	viper.Set("timeout_secs", 45)
	viper.Set("fail_on", "medium")
	viper.Set("share", true)
	viper.Set("concurrency", 4)
	viper.Set("rate_limit", 2)

	applyConfigDefaults()

	if cliConfig.APIKey != "cfg-key" {
		t.Fatalf("expected config api key, got %q", cliConfig.APIKey)
	}
	if cliConfig.Endpoint != "https://api.staging.webscan.dev" {
		t.Fatalf("expected config endpoint, got %q", cliConfig.Endpoint)
	}
	if cliConfig.TimeoutSecs != 45 {
		t.Fatalf("expected timeout 45, got %d", cliConfig.TimeoutSecs)
	}
	if cliConfig.FailOn != "medium" {
		t.Fatalf("expected fail-on medium, got %s", cliConfig.FailOn)
	}
	if !cliConfig.Share {
		t.Fatal("expected share to be enabled from config")
	}
	if cliConfig.Concurrency != 4 || cliConfig.RateLimit != 2 {
		t.Fatalf("expected concurrency/rate from config, got %d/%d", cliConfig.Concurrency, cliConfig.RateLimit)
	}
}

func TestApplyConfigDefaultsKeepsExplicitFlags(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		resetScanConfig(t)
	})

	resetScanConfig(t)

	if err := rootCmd.Flags().Set("timeout", "10"); err != nil {
		t.Fatalf("failed to set timeout flag: %v", err)
	}
	if err := rootCmd.Flags().Set("fail-on", "low"); err != nil {
		t.Fatalf("failed to set fail-on flag: %v", err)
	}

	viper.Set("timeout_secs", 45)
	viper.Set("fail_on", "medium")

	applyConfigDefaults()

	if cliConfig.TimeoutSecs != 10 {
		t.Fatalf("expected explicit timeout 10 to win, got %d", cliConfig.TimeoutSecs)
	}
	if cliConfig.FailOn != "low" {
		t.Fatalf("expected explicit fail-on low to win, got %s", cliConfig.FailOn)
	}
}

func TestEnvKeyFeedsConfig(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		resetScanConfig(t)
	})

	resetScanConfig(t)
	t.Setenv("WEBSCAN_API_KEY", "env-key")
	if err := viper.BindEnv("api_key", "WEBSCAN_API_KEY"); err != nil {
		t.Fatalf("failed to bind env: %v", err)
	}

	applyConfigDefaults()

	if cliConfig.APIKey != "env-key" {
		t.Fatalf("expected key from environment, got %q", cliConfig.APIKey)
	}
}

func TestExplicitKeyFlagBeatsEnv(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		resetScanConfig(t)
	})

	resetScanConfig(t)
	t.Setenv("WEBSCAN_API_KEY", "env-key")
	if err := viper.BindEnv("api_key", "WEBSCAN_API_KEY"); err != nil {
		t.Fatalf("failed to bind env: %v", err)
	}
	if err := rootCmd.Flags().Set("key", "flag-key"); err != nil {
		t.Fatalf("failed to set key flag: %v", err)
	}

	applyConfigDefaults()

	if cliConfig.APIKey != "flag-key" {
		t.Fatalf("expected explicit flag to win, got %q", cliConfig.APIKey)
	}
}
