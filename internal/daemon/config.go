package daemon

import (
	"errors"
	"fmt"
	"github.com/icinga/icinga-restquery/internal"
	"github.com/icinga/icinga-restquery/internal/config"
	"github.com/icinga/icinga-restquery/internal/utils"
	"github.com/jessevdk/go-flags"
	"os"
	"runtime"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// DefaultConfigPath is used when neither the --config flag nor the ConfigEnv environment variable is set.
const DefaultConfigPath = "/etc/icinga-restquery/config.yml"

// ConfigEnv is the environment variable an alternative config path can be provided with.
const ConfigEnv = "ICINGA_RESTQUERY_CONFIG"

// Flags defines the CLI flags supported by Icinga REST Query.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file
	Config string `short:"c" long:"config" description:"path to config file"`
	// Listen overrides the listen address of the config file.
	Listen string `long:"listen" description:"address to serve the filter API on"`
	// Resource and Query parse a single query string instead of starting the listener.
	Resource string `short:"r" long:"resource" description:"parse --query with the filter set of this resource and exit"`
	Query    string `short:"q" long:"query" description:"decoded query string to parse, requires --resource"`
}

// ParseFlags parses the given CLI arguments, excluding the program name.
//
// Returns flags.ErrHelp wrapped in a *flags.Error if the help was requested.
func ParseFlags(args []string) (*Flags, error) {
	f := new(Flags)
	if _, err := flags.NewParser(f, flags.Default).ParseArgs(args); err != nil {
		return nil, err
	}

	if f.Query != "" && f.Resource == "" {
		return nil, errors.New("--query requires --resource")
	}

	return f, nil
}

// ConfigPath resolves the config file path from the flags, the environment and the default.
func (f *Flags) ConfigPath() string {
	path, _ := utils.FirstNonEmpty([]string{f.Config, os.Getenv(ConfigEnv), DefaultConfigPath})
	return path
}

// ParseFlagsAndConfig parses the CLI flags provided to the executable and tries to load the config from the YAML file.
//
// Prints any error during parsing or config loading to os.Stderr and exits, otherwise returns the parsed flags
// and the loaded ConfigFile.
func ParseFlagsAndConfig() (*Flags, *config.ConfigFile) {
	f, err := ParseFlags(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(ExitSuccess)
		}

		printErrorThenExit(err, ExitFailure)
	}

	if f.Version {
		fmt.Println("Icinga REST Query version:", internal.Version)
		fmt.Println()

		fmt.Println("Build information:")
		fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if internal.Commit != "" {
			fmt.Println("  Git commit:", internal.Commit)
		}
		os.Exit(ExitSuccess)
	}

	conf, err := config.FromFile(f.ConfigPath())
	if err != nil {
		printErrorThenExit(fmt.Errorf("cannot load config: %w", err), ExitFailure)
	}

	if listen, ok := utils.FirstNonEmpty([]string{f.Listen, conf.Listen}); ok {
		conf.Listen = listen
	}

	return f, conf
}

func printErrorThenExit(err error, exitCode int) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode)
}
