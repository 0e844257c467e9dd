package installer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/goext"
	"github.com/samber/lo"
)

// The placeholder in the install command which is replaced with the bundle path.
const FilePlaceholder = "{file}"

// Installs bundles by running a command of the host application.
type CommandInstaller struct {
	logger  *slog.Logger
	command []string
}

func NewCommandInstaller(logger *slog.Logger, command []string) *CommandInstaller {
	return &CommandInstaller{
		logger:  logger.With(slog.String("component", "command-installer")),
		command: command,
	}
}

// Builds the arguments for the given bundle. The bundle is appended if the command has no placeholder.
func (c *CommandInstaller) Arguments(bundlePath string) []string {
	args := lo.Map(c.command[1:], func(arg string, _ int) string {
		return strings.ReplaceAll(arg, FilePlaceholder, bundlePath)
	})
	if !lo.SomeBy(c.command, func(arg string) bool { return strings.Contains(arg, FilePlaceholder) }) {
		args = append(args, bundlePath)
	}
	return args
}

func (c *CommandInstaller) Install(ctx context.Context, candidate *common.UpdateCandidate, bundlePath string) error {
	if len(c.command) == 0 {
		return fmt.Errorf("empty install command")
	}
	args := c.Arguments(bundlePath)
	c.logger.Debug(fmt.Sprintf("Running '%s' with %v", c.command[0], args))
	stdout, stderr, err := goext.CmdRunners.Default.RunGetOutput(c.command[0], args...)
	if err != nil {
		return fmt.Errorf("install command failed: %v - %s", err, stderr)
	}
	if stdout != "" {
		c.logger.Debug(stdout)
	}
	return nil
}
