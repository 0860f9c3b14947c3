// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v2"

	"github.com/juju/bagsync/internal/vault"
)

// Store is the part of vault the commands need.
type Store interface {
	Read(ctx context.Context, path string) (map[string]interface{}, error)
	Write(ctx context.Context, path string, data map[string]interface{}) error
}

// StoreFunc connects to the secrets store described by cfg.
type StoreFunc func(ctx context.Context, cfg vault.Config) (Store, error)

func newVaultStore(ctx context.Context, cfg vault.Config) (Store, error) {
	client, err := vault.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return client, nil
}

// vaultFlags holds the flags shared by every command talking to vault.
type vaultFlags struct {
	configFile string
	getenv     func(string) string
}

func (f *vaultFlags) SetFlags(fs *gnuflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "Path to a YAML file with vault settings")
}

// config builds the vault config from the environment, overlaid with
// the contents of the config file when one was given.
func (f *vaultFlags) config(ctx *cmd.Context) (vault.Config, error) {
	getenv := f.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	attrs, err := vault.EnvAttrs(getenv)
	if err != nil {
		return vault.Config{}, errors.Trace(err)
	}
	if f.configFile != "" {
		fileAttrs, err := readConfigFile(ctx.AbsPath(f.configFile))
		if err != nil {
			return vault.Config{}, errors.Trace(err)
		}
		for k, v := range fileAttrs {
			attrs[k] = v
		}
	}
	cfg, err := vault.NewConfig(attrs)
	return cfg, errors.Trace(err)
}

func readConfigFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Annotatef(err, "parsing config file %q", path)
	}
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	return attrs, nil
}
