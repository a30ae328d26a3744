// Package main provides the verifyhome CLI, which drives a headless browser
// against a running Jubee app instance to verify the home view: the welcome
// heading must be visible and the removed marketing line must not be.
// Exit code is 0 on success and 1 on any verification or automation failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apexbusiness-systems/jubeeloveai/pkg/config"
	"github.com/apexbusiness-systems/jubeeloveai/pkg/logging"
	"github.com/apexbusiness-systems/jubeeloveai/pkg/verify"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	TargetURL       string
	ConfigFile      string
	HomeScreenshot  string
	ErrorScreenshot string
	Headed          bool
	Verbosity       string
	ShowVersion     bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("verifyhome v%s\n", version)
		return
	}

	// Cancel the run on SIGINT/SIGTERM so the browser shuts down cleanly
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()
	defer cancel()

	if err := run(ctx, cli); err != nil {
		os.Exit(1)
	}
}

// parseFlags parses command line flags. Empty string flags mean "use the
// config file value (or the default)"; environment variables provide the
// flag defaults so CI can configure the run without arguments.
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.TargetURL, "url", os.Getenv("JUBEE_VERIFY_URL"), "Target application URL (default http://localhost:3000)")
	flag.StringVar(&cli.ConfigFile, "config", os.Getenv("JUBEE_VERIFY_CONFIG"), "Path to configuration file (YAML)")
	flag.StringVar(&cli.HomeScreenshot, "home-screenshot", "", "Path for the success screenshot (default verification_home.png)")
	flag.StringVar(&cli.ErrorScreenshot, "error-screenshot", "", "Path for the failure screenshot (default verification_error.png)")
	flag.BoolVar(&cli.Headed, "headed", os.Getenv("JUBEE_VERIFY_HEADED") == "true", "Run the browser with a visible window (for debugging)")
	flag.StringVar(&cli.Verbosity, "verbosity", "", "Console verbosity: quiet, normal, verbose, debug")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "verifyhome - Jubee home view verification\n\n")
		fmt.Fprintf(os.Stderr, "Usage: verifyhome [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Verify the locally running app\n")
		fmt.Fprintf(os.Stderr, "  verifyhome\n\n")
		fmt.Fprintf(os.Stderr, "  # Verify a staging deployment with a visible browser\n")
		fmt.Fprintf(os.Stderr, "  verifyhome -url https://staging.jubee.app -headed\n\n")
	}

	flag.Parse()
	return cli
}

// run executes one verification
func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}

	level, err := logging.ParseLevel(cfg.Verbosity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}
	console := logging.NewConsole(level)

	logger, logErr := logging.NewLogger("verifyhome")
	if logErr != nil {
		console.Warningf("file logging unavailable: %v", logErr)
	}
	defer logger.Close()

	logger.Infof("run %s starting against %s", logger.RunID(), cfg.TargetURL)

	runner := verify.NewRunner(cfg, console, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Errorf("run failed: %v", err)
		return err
	}

	logger.Infof("run succeeded, screenshot at %s", cfg.HomeScreenshot)
	return nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file when given, then CLI flag overrides, then validation.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()

	if cli.ConfigFile != "" {
		loaded, err := config.Load(cli.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.TargetURL != "" {
		cfg.TargetURL = cli.TargetURL
	}
	if cli.HomeScreenshot != "" {
		cfg.HomeScreenshot = cli.HomeScreenshot
	}
	if cli.ErrorScreenshot != "" {
		cfg.ErrorScreenshot = cli.ErrorScreenshot
	}
	if cli.Verbosity != "" {
		cfg.Verbosity = cli.Verbosity
	}
	if cli.Headed {
		cfg.Headless = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
