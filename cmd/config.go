package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

const (
	defaultScanTimeoutSecs = 30
	defaultConcurrency     = 1
	defaultRateLimit       = 1
)

// CLIConfig captures runtime configuration for a scan run. Flags bind
// directly to its fields; config-file values fill in whatever the user
// did not set on the command line.
type CLIConfig struct {
	APIKey      string
	Endpoint    string
	TimeoutSecs int
	FailOn      string
	Fail        bool
	Share       bool
	Quiet       bool
	JSON        bool
	Export      string
	Concurrency int
	RateLimit   int
}

type defaultOverrides struct {
	APIKey      string
	Endpoint    string
	TimeoutSecs *int
	FailOn      string
	Share       *bool
	Concurrency *int
	RateLimit   *int
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Endpoint:    scanner.DefaultBaseURL,
		TimeoutSecs: defaultScanTimeoutSecs,
		FailOn:      string(scanner.DefaultFailThreshold),
		Concurrency: defaultConcurrency,
		RateLimit:   defaultRateLimit,
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("api_key") {
		overrides.APIKey = viper.GetString("api_key")
	}

	if viper.IsSet("endpoint") {
		overrides.Endpoint = viper.GetString("endpoint")
	}

	if viper.IsSet("timeout_secs") {
		val := viper.GetInt("timeout_secs")
		overrides.TimeoutSecs = &val
	}

	if viper.IsSet("fail_on") {
		overrides.FailOn = viper.GetString("fail_on")
	}

	if viper.IsSet("share") {
		val := viper.GetBool("share")
		overrides.Share = &val
	}

	if viper.IsSet("concurrency") {
		val := viper.GetInt("concurrency")
		overrides.Concurrency = &val
	}

	if viper.IsSet("rate_limit") {
		val := viper.GetInt("rate_limit")
		overrides.RateLimit = &val
	}

	return overrides
}

// applyConfigDefaults merges config file values into the runtime config when
// the user did not explicitly override the corresponding flag.
func applyConfigDefaults() {
	overrides := loadDefaultOverrides()
	flags := rootCmd.Flags()

	if overrides.APIKey != "" {
		setStringFlagIfUnset(flags, "key", overrides.APIKey)
	}

	if overrides.Endpoint != "" {
		cliConfig.Endpoint = overrides.Endpoint
	}

	if overrides.TimeoutSecs != nil {
		applyIntDefault(flags, "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.TimeoutSecs = v
		})
	}

	if overrides.FailOn != "" {
		setStringFlagIfUnset(flags, "fail-on", overrides.FailOn)
	}

	if overrides.Share != nil {
		applyBoolDefault(flags, "share", *overrides.Share, func(v bool) {
			cliConfig.Share = v
		})
	}

	if overrides.Concurrency != nil {
		applyIntDefault(flags, "concurrency", *overrides.Concurrency, func(v int) {
			cliConfig.Concurrency = v
		})
	}

	if overrides.RateLimit != nil {
		applyIntDefault(flags, "rate", *overrides.RateLimit, func(v int) {
			cliConfig.RateLimit = v
		})
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
