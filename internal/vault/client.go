// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package vault is the secrets store data bags are migrated to. Secrets
// are kept in a KV version 1 mount, so every write replaces the whole
// entry at a path.
package vault

import (
	"context"

	"github.com/hashicorp/vault/api"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	vaultgo "github.com/mittwald/vaultgo"
)

var logger = loggo.GetLogger("bagsync.vault")

const githubLoginPath = "auth/github/login"

type logical interface {
	ReadWithContext(ctx context.Context, path string) (*api.Secret, error)
	WriteWithContext(ctx context.Context, path string, data map[string]interface{}) (*api.Secret, error)
}

// Client reads and writes whole secrets.
type Client struct {
	logical logical
}

// NewClient logs in to the vault described by cfg and checks it is
// unsealed and that the resulting token is valid.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	tlsConfig := &vaultgo.TLSConfig{
		TLSConfig: &api.TLSConfig{
			CACert:   cfg.CACert,
			Insecure: cfg.SkipTLSVerify,
		},
	}
	c, err := vaultgo.NewClient(cfg.Address, tlsConfig)
	if err != nil {
		return nil, errors.Annotatef(err, "creating vault client for %q", cfg.Address)
	}

	token, err := login(ctx, c.Client, cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.SetToken(token)

	if err := checkReady(ctx, c.Client); err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("logged in to vault at %q using %s auth", cfg.Address, cfg.AuthMethod)
	return &Client{logical: c.Logical()}, nil
}

func login(ctx context.Context, c *api.Client, cfg Config) (string, error) {
	if cfg.AuthMethod == AuthToken {
		return cfg.Credential, nil
	}
	c.ClearToken()
	secret, err := c.Logical().WriteWithContext(ctx, githubLoginPath, map[string]interface{}{
		"token": cfg.Credential,
	})
	if err != nil {
		return "", errors.WithType(errors.Annotate(err, "github login"), NotAuthenticated)
	}
	if secret == nil || secret.Auth == nil || secret.Auth.ClientToken == "" {
		return "", errors.WithType(errors.New("github login returned no token"), NotAuthenticated)
	}
	return secret.Auth.ClientToken, nil
}

func checkReady(ctx context.Context, c *api.Client) error {
	status, err := c.Sys().SealStatusWithContext(ctx)
	if err != nil {
		return errors.Annotate(err, "checking seal status")
	}
	if status.Initialized && status.Sealed {
		return errors.WithType(errors.Errorf("vault at %q is initialized but sealed", c.Address()), Sealed)
	}
	if _, err := c.Auth().Token().LookupSelfWithContext(ctx); err != nil {
		if isPermissionDenied(err) {
			return errors.WithType(errors.New("could not get auth"), NotAuthenticated)
		}
		return errors.Annotate(err, "looking up token")
	}
	return nil
}

// Read returns the data held at path.
func (c *Client) Read(ctx context.Context, path string) (map[string]interface{}, error) {
	secret, err := c.logical.ReadWithContext(ctx, path)
	if isNotFound(err) || (err == nil && secret == nil) {
		return nil, errors.NotFoundf("secret %q", path)
	}
	if err != nil {
		return nil, errors.Annotatef(maybePermissionDenied(err), "reading %q", path)
	}
	return secret.Data, nil
}

// Write replaces the data held at path.
func (c *Client) Write(ctx context.Context, path string, data map[string]interface{}) error {
	if _, err := c.logical.WriteWithContext(ctx, path, data); err != nil {
		return errors.Trace(maybePermissionDenied(err))
	}
	logger.Tracef("wrote %d keys to %q", len(data), path)
	return nil
}
