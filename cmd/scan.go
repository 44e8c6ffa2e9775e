package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khanhnv2901/webscan-cli/internal/output"
	"github.com/khanhnv2901/webscan-cli/scanner"
)

// runScan is the root command: validate input, scan every target, render,
// optionally export, and let the exit policy decide the final code. Every
// failure before or during the scan prints guidance and returns nil, which
// keeps the exit code at 0.
func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errW := cmd.ErrOrStderr()

	if len(args) == 0 {
		fmt.Fprintln(errW, "A target URL is required, e.g. webscan https://example.com")
		fmt.Fprintln(errW)
		_ = cmd.Help()
		return nil
	}

	for _, target := range args {
		if err := scanner.ValidateTarget(target); err != nil {
			fmt.Fprintln(errW, err)
			fmt.Fprintln(errW, "Targets must be full URLs starting with http:// or https://")
			return nil
		}
	}

	threshold, err := scanner.ParseFailThreshold(cliConfig.FailOn)
	if err != nil {
		fmt.Fprintln(errW, err)
		return nil
	}

	if cliConfig.Export != "" {
		if err := validateExportPath(cliConfig.Export); err != nil {
			fmt.Fprintln(errW, err)
			return nil
		}
	}

	client := scanner.NewClient(scanner.Options{
		APIKey:  cliConfig.APIKey,
		BaseURL: cliConfig.Endpoint,
		Timeout: time.Duration(cliConfig.TimeoutSecs) * time.Second,
		Logger:  logger.Desugar(),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(errW, "\n%s received %s, stopping...\n", color.YellowString("!"), sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	outcomes := runTargets(ctx, client, args)

	renderer := output.NewRenderer(out, errW)
	picker := output.NewPicker(nil)
	multi := len(outcomes) > 1

	failed := false
	jsonBatch := make([]*scanner.ScanResult, 0, len(outcomes))

	for _, oc := range outcomes {
		if oc.Err != nil {
			renderer.Failure(oc.Target, oc.Err)
			continue
		}
		res := oc.Result

		switch {
		case cliConfig.JSON && multi:
			jsonBatch = append(jsonBatch, res)
		case cliConfig.JSON:
			if err := renderer.JSON(res); err != nil {
				renderer.Failure(oc.Target, err)
			}
		case cliConfig.Quiet:
			if multi {
				renderer.Target(oc.Target)
			}
			renderer.Quiet(res)
		default:
			if multi {
				renderer.Target(oc.Target)
			}
			message := picker.For(res)
			detailsURL := client.ResolveDetailsURL(ctx, res, cliConfig.Share, message)
			renderer.Full(res, message, detailsURL)
		}

		if cliConfig.Export != "" {
			if err := writeExport(res, cliConfig.Export, multi); err != nil {
				fmt.Fprintf(errW, "%s %v\n", color.YellowString("Warning:"), err)
			}
		}

		if scanner.ShouldFail(res, cliConfig.Fail, threshold) {
			failed = true
		}
	}

	if cliConfig.JSON && multi {
		if err := renderer.JSONAll(jsonBatch); err != nil {
			fmt.Fprintln(errW, err)
		}
	}

	if failed {
		return &ExitError{Code: 1}
	}
	return nil
}

// runTargets scans one or many targets. A single target scans inline with
// a spinner; several targets go through the worker pool with a combined
// progress line. Progress is suppressed for machine-readable modes.
func runTargets(ctx context.Context, client *scanner.Client, targets []string) []scanner.Outcome {
	showProgress := !cliConfig.JSON && !cliConfig.Quiet && isInteractive()

	if len(targets) == 1 {
		var spin *spinner
		if showProgress {
			spin = newSpinner(fmt.Sprintf("Scanning %s...", targets[0]))
		}
		res, err := client.Scan(ctx, targets[0])
		spin.Stop()
		return []scanner.Outcome{{Target: targets[0], Result: res, Err: err}}
	}

	var progress *progressPrinter
	var onProgress scanner.ProgressFunc
	if showProgress {
		progress = newProgressPrinter(len(targets), "webscan")
		progress.Start()
		onProgress = func(target string, res *scanner.ScanResult, err error, duration float64) {
			ok := err == nil && res != nil && res.Status != scanner.StatusError
			progress.Increment(ok, duration)
		}
	}

	runner := &scanner.Runner{
		Client:      client,
		Concurrency: cliConfig.Concurrency,
		RateLimit:   cliConfig.RateLimit,
	}
	outcomes := runner.ScanAll(ctx, targets, onProgress)

	if progress != nil {
		progress.Stop()
	}
	return outcomes
}
