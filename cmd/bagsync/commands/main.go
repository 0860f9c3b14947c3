// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands holds the bagsync command line.
package commands

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("bagsync.cmd")

// loggingConfigEnvKey seeds the default logging config of the super command.
const loggingConfigEnvKey = "BAGSYNC_LOGGING_CONFIG"

var bagsyncDoc = `
bagsync moves configuration out of Chef data bags and into vault, and
maintains the proxy's list of upstream web servers held there.

The vault connection is configured from the environment (VAULT_ADDR,
GITHUB_TOKEN, VAULT_CACERT, VAULT_SKIP_VERIFY, BAGSYNC_AUTH_METHOD)
or a YAML file passed with --config. Values in the file win.
`

// Main runs the bagsync command with the given process arguments and
// returns the exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return cmd.Main(NewBagsyncCommand(), ctx, args[1:])
}

// NewBagsyncCommand returns the bagsync super command with every
// subcommand registered.
func NewBagsyncCommand() cmd.Command {
	bagsync := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name: "bagsync",
		Doc:  bagsyncDoc,
		Log: &cmd.Log{
			DefaultConfig: os.Getenv(loggingConfigEnvKey),
		},
		NotifyRun: func(name string) {
			logger.Debugf("running %s", name)
		},
	})
	bagsync.Register(NewSyncCommand())
	bagsync.Register(NewUpdateUpstreamCommand())
	return bagsync
}
