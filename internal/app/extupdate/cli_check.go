package extupdate

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/roemer/extupdate/pkg/updater"
)

func CheckCmd(args []string) error {
	var flags commonFlags
	var startup bool
	flagSet := flag.NewFlagSet("check", flag.ExitOnError)
	flags.register(flagSet)
	flagSet.BoolVar(&startup, "startup", false, "Run as startup check, does nothing if 'checkAtStartup' is disabled")
	flagSet.Usage = func() { printCmdUsage(flagSet, "check", "") }
	flagSet.Parse(args)

	logger := flags.createLogger()
	cfg, err := flags.loadConfig(logger)
	if err != nil {
		return err
	}
	if startup && !cfg.IsCheckAtStartup() {
		logger.Debug("Check at startup is disabled")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := updater.NewUpdater(&updater.UpdaterSettings{Logger: logger, Config: cfg}).Check(ctx)
	if err != nil {
		return err
	}
	WriteReport(os.Stdout, result)
	if result.Problems() != nil {
		return errProblemsFound
	}
	return nil
}
