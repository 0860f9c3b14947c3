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

	"github.com/juju/bagsync/internal/databag"
	"github.com/juju/bagsync/internal/migration"
)

var syncDoc = `
Copies Chef data bags into vault.

The destination selects what is copied: the base path copies every data
bag, one more segment copies a single data bag and two more segments
copy a single item. Each item is written to
secret/databags/<data bag>/<item>. The certs item of the nmdproxy data
bag is split into one entry per environment and site.

Data bags are read from a chef-repo checkout when --repo is given, and
from the Chef server through knife otherwise.
`

const syncExamples = `
    bagsync sync-databags
    bagsync sync-databags --dest secret/databags/nmdhosting --dry-run
    bagsync sync-databags --dest databags/nmdproxy/certs --repo ~/chef-repo
`

const defaultKnifeBinary = "knife"

// SourceFunc returns the data bag source selected by the command flags.
type SourceFunc func(repo string, knife databag.KnifeConfig) migration.Source

func newDatabagSource(repo string, knife databag.KnifeConfig) migration.Source {
	if repo != "" {
		return databag.NewRepoSource(repo)
	}
	return databag.NewKnifeSource(knife)
}

type syncCommand struct {
	cmd.CommandBase
	connection vaultFlags

	newStore  StoreFunc
	newSource SourceFunc

	dest   string
	dryRun bool
	repo   string
	knife  databag.KnifeConfig
}

// NewSyncCommand returns a command copying data bags into vault.
func NewSyncCommand() cmd.Command {
	return &syncCommand{
		newStore:  newVaultStore,
		newSource: newDatabagSource,
	}
}

// Info implements cmd.Command.
func (c *syncCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "sync-databags",
		Purpose: "Copy Chef data bags into vault.",
		Doc:     syncDoc + "\nExamples:\n" + syncExamples,
	}
}

// SetFlags implements cmd.Command.
func (c *syncCommand) SetFlags(f *gnuflag.FlagSet) {
	c.CommandBase.SetFlags(f)
	c.connection.SetFlags(f)
	f.StringVar(&c.dest, "dest", migration.BasePath, "The vault path to migrate to")
	f.BoolVar(&c.dryRun, "dry-run", false, "Report what would be written without writing")
	f.StringVar(&c.repo, "repo", "", "Read data bags from this chef-repo checkout")
	f.StringVar(&c.knife.Binary, "knife", defaultKnifeBinary, "The knife executable")
	f.StringVar(&c.knife.ConfigFile, "knife-config", "", "Configuration file passed to knife")
}

// Init implements cmd.Command.
func (c *syncCommand) Init(args []string) error {
	if c.repo != "" && (c.knife.ConfigFile != "" || c.knife.Binary != defaultKnifeBinary) {
		return errors.New("--repo cannot be used with --knife or --knife-config")
	}
	if _, err := migration.ResolveScope(c.dest); err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *syncCommand) Run(ctx *cmd.Context) error {
	stdCtx := context.Background()

	// A dry run never writes, so vault is not contacted at all.
	var store migration.Store
	if !c.dryRun {
		cfg, err := c.connection.config(ctx)
		if err != nil {
			return errors.Trace(err)
		}
		s, err := c.newStore(stdCtx, cfg)
		if err != nil {
			return errors.Trace(err)
		}
		store = s
	}

	repo := c.repo
	if repo != "" {
		repo = ctx.AbsPath(repo)
	}
	knife := c.knife
	knife.WorkingDir = ctx.Dir
	if knife.ConfigFile != "" {
		knife.ConfigFile = ctx.AbsPath(knife.ConfigFile)
	}
	source := c.newSource(repo, knife)

	writer := migration.NewWriter(store, ctx, c.dryRun)
	summary, err := migration.NewMigrator(source, writer, ctx).Run(stdCtx, c.dest)
	if err != nil {
		return errors.Trace(err)
	}
	verb := "Migrated"
	if c.dryRun {
		verb = "Would migrate"
	}
	fmt.Fprintf(ctx.Stdout, "%s %d data bag items (%d entries) from %s\n",
		verb, summary.Bags, summary.Units, describeScope(summary.Scope))
	if len(summary.Skipped) > 0 {
		skipped := make([]string, len(summary.Skipped))
		for i, pair := range summary.Skipped {
			skipped[i] = pair.String()
		}
		fmt.Fprintf(ctx.Stdout, "Skipped %d unrecognized items: %s\n", len(skipped), strings.Join(skipped, ", "))
	}
	return nil
}

func describeScope(scope migration.Scope) string {
	switch scope.Kind {
	case migration.OneContainer:
		return fmt.Sprintf("data bag %q", scope.Container)
	case migration.OneBag:
		return fmt.Sprintf("item %q", scope.Container+"/"+scope.Bag)
	default:
		return "all data bags"
	}
}
