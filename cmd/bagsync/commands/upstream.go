// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/bagsync/internal/upstream"
)

var updateUpstreamDoc = `
Adds a web server to, or removes one from, the proxy's upstream list.

Servers in the staging domain go to the staging web01 cluster, every
other server goes to the production webcluster01 cluster. Entries are
stored as "server <host>:<port>;" and a bare host name is given port 80.
Removal matches the first entry containing the given name.

The whole proxy record is read and written back, so two concurrent
updates can lose one of the changes.
`

const updateUpstreamExamples = `
    bagsync update-upstream --server web05.example.com
    bagsync update-upstream --server web02.nmdev.us --remove
    bagsync update-upstream --server web05.example.com --dry-run
`

type updateUpstreamCommand struct {
	cmd.CommandBase
	connection vaultFlags

	newStore StoreFunc

	server string
	add    bool
	remove bool
	dryRun bool
}

// NewUpdateUpstreamCommand returns a command editing the proxy's
// upstream server list.
func NewUpdateUpstreamCommand() cmd.Command {
	return &updateUpstreamCommand{
		newStore: newVaultStore,
	}
}

// Info implements cmd.Command.
func (c *updateUpstreamCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "update-upstream",
		Purpose: "Add or remove a proxy upstream web server.",
		Doc:     updateUpstreamDoc + "\nExamples:\n" + updateUpstreamExamples,
	}
}

// SetFlags implements cmd.Command.
func (c *updateUpstreamCommand) SetFlags(f *gnuflag.FlagSet) {
	c.CommandBase.SetFlags(f)
	c.connection.SetFlags(f)
	f.StringVar(&c.server, "server", "", "The web server host name or entry")
	f.BoolVar(&c.add, "add", false, "Add the server (the default)")
	f.BoolVar(&c.remove, "remove", false, "Remove the server")
	f.BoolVar(&c.dryRun, "dry-run", false, "Report the change without writing it")
}

// Init implements cmd.Command.
func (c *updateUpstreamCommand) Init(args []string) error {
	c.server = strings.TrimSpace(c.server)
	if c.server == "" {
		return errors.New("--server is required")
	}
	if c.add && c.remove {
		return errors.New("--add and --remove cannot be used together")
	}
	return cmd.CheckEmpty(args)
}

func (c *updateUpstreamCommand) operation() upstream.Operation {
	if c.remove {
		return upstream.RemoveServer
	}
	return upstream.AddServer
}

// Run implements cmd.Command.
func (c *updateUpstreamCommand) Run(ctx *cmd.Context) error {
	stdCtx := context.Background()
	cfg, err := c.connection.config(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	store, err := c.newStore(stdCtx, cfg)
	if err != nil {
		return errors.Trace(err)
	}

	updater := upstream.NewUpdater(store, ctx, c.dryRun)
	result, err := updater.Update(stdCtx, c.operation(), c.server)
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stdout, "%s: %s\n", result.Route, result.Outcome)
	return nil
}
