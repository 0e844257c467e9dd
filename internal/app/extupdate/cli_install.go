package extupdate

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/roemer/extupdate/pkg/updater"
)

func InstallCmd(args []string) error {
	var flags commonFlags
	var downloadOnly bool
	flagSet := flag.NewFlagSet("install", flag.ExitOnError)
	flags.register(flagSet)
	flagSet.BoolVar(&downloadOnly, "download-only", false, "Only download the bundle without installing it")
	flagSet.Usage = func() { printCmdUsage(flagSet, "install", "<extension-id>") }
	flagSet.Parse(args)

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("exactly one extension id is required")
	}
	identifier := flagSet.Arg(0)

	logger := flags.createLogger()
	cfg, err := flags.loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	installResult, err := updater.NewUpdater(&updater.UpdaterSettings{Logger: logger, Config: cfg}).Install(ctx, identifier, downloadOnly)
	if err != nil {
		return err
	}
	WriteInstallReport(os.Stdout, installResult)
	return nil
}
