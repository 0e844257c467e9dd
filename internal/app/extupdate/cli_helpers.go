package extupdate

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/extupdate/pkg/config"
	"github.com/roemer/extupdate/pkg/logging"
	"github.com/samber/lo"
)

// Flags which are shared by all commands that work on the extensions.
type commonFlags struct {
	verbose       bool
	configFile    string
	extensionsDir string
	failFast      bool
}

func (f *commonFlags) register(flagSet *flag.FlagSet) {
	flagSet.BoolVar(&f.verbose, "verbose", false, "The flag to set in order to get verbose output")
	flagSet.BoolVar(&f.verbose, "v", f.verbose, "Alias for -verbose")
	flagSet.StringVar(&f.configFile, "config", "", "The path to the config file to read. Defaults to 'extupdate' or the default preset")
	flagSet.StringVar(&f.extensionsDir, "dir", "", "Overrides the directory which contains the extensions")
	flagSet.BoolVar(&f.failFast, "fail-fast", false, "Abort the check when a release cannot be fetched")
}

func (f *commonFlags) createLogger() *slog.Logger {
	desiredLogLevel := lo.Ternary(f.verbose, slog.LevelDebug, slog.LevelInfo)
	logger := logging.NewLogger(os.Stderr, desiredLogLevel)
	logger.Debug(fmt.Sprintf("Initialized logger with level: %s", desiredLogLevel))
	return logger
}

// Loads the config and applies the overrides from the flags.
func (f *commonFlags) loadConfig(logger *slog.Logger) (*config.ExtupdateConfig, error) {
	cfg, err := loadConfigOrDefault(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.extensionsDir != "" {
		logger.Debug(fmt.Sprintf("Using extensions directory from flag: %s", f.extensionsDir))
		cfg.ExtensionsDir = f.extensionsDir
	}
	if f.failFast {
		cfg.FailFast = common.TruePtr
	}
	return cfg, nil
}

func loadConfigOrDefault(configFile string) (*config.ExtupdateConfig, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if foundPath, err := config.SearchConfigFileFromPath("extupdate"); err != nil {
		return nil, err
	} else if foundPath != "" {
		return config.Load(foundPath)
	}
	return config.Load("preset:defaults")
}

// Prints the help for a command
func printCmdUsage(flagSet *flag.FlagSet, commandName, nonFlagArgs string) {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintf(os.Stderr, "  extupdate %s [flags]", commandName)
	if nonFlagArgs != "" {
		fmt.Fprint(os.Stderr, " "+nonFlagArgs)
	}
	fmt.Fprintln(os.Stderr, "")

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flagSet.PrintDefaults()
}

// An error which only sets the exit code, the details were already printed.
var errProblemsFound = errors.New("not all extensions could be checked")
