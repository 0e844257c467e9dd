package extupdate

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/roemer/extupdate/pkg/resolver"
	"github.com/roemer/extupdate/pkg/updater"
)

// Writes the result of a check pass in a human readable form.
func WriteReport(w io.Writer, result *resolver.ResolveResult) {
	if result.IsUpToDate() {
		fmt.Fprintln(w, "All extensions are up to date")
		return
	}

	if len(result.Updates) > 0 {
		fmt.Fprintln(w, "Updates available:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tNAME\tINSTALLED\tAVAILABLE")
		for _, candidate := range result.Updates {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", candidate.PackageIdentifier, candidate.DisplayName, candidate.InstalledVersion, candidate.RemoteVersion)
		}
		tw.Flush()
		fmt.Fprintln(w, "Run `extupdate install <id>` to install an update")
	}

	for _, label := range result.AssetFailures {
		fmt.Fprintf(w, "The latest release of '%s' has no installable bundle, please contact its maintainer\n", label)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "Failed checking %s\n", failure)
	}
}

// Writes the result of an install.
func WriteInstallReport(w io.Writer, result *updater.InstallResult) {
	candidate := result.Candidate
	if result.Installed {
		fmt.Fprintf(w, "Installed '%s' %s (was %s)\n", candidate.DisplayName, candidate.RemoteVersion, candidate.InstalledVersion)
	} else {
		fmt.Fprintf(w, "Downloaded '%s' %s to %s\n", candidate.DisplayName, candidate.RemoteVersion, result.BundlePath)
	}
	if result.RemainingErr != nil {
		fmt.Fprintf(w, "The remaining updates could not be listed: %v\n", result.RemainingErr)
		return
	}
	if result.Remaining != nil && !result.Remaining.IsUpToDate() {
		fmt.Fprintln(w)
		WriteReport(w, result.Remaining)
	}
}
