// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vault_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/bagsync/internal/vault"
)

type configSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&configSuite{})

func (s *configSuite) TestNewConfigDefaults(c *gc.C) {
	cfg, err := vault.NewConfig(map[string]interface{}{
		"address":    "https://vault.example.com:8200",
		"credential": "ghp_secret",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg, jc.DeepEquals, vault.Config{
		Address:    "https://vault.example.com:8200",
		Credential: "ghp_secret",
		AuthMethod: vault.AuthGitHub,
	})
}

func (s *configSuite) TestNewConfigAll(c *gc.C) {
	cfg, err := vault.NewConfig(map[string]interface{}{
		"address":         "http://127.0.0.1:8200",
		"credential":      "s.token",
		"auth-method":     "token",
		"ca-cert":         "/etc/ssl/vault.pem",
		"skip-tls-verify": true,
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg, jc.DeepEquals, vault.Config{
		Address:       "http://127.0.0.1:8200",
		Credential:    "s.token",
		AuthMethod:    vault.AuthToken,
		CACert:        "/etc/ssl/vault.pem",
		SkipTLSVerify: true,
	})
}

func (s *configSuite) TestNewConfigErrors(c *gc.C) {
	for i, t := range []struct {
		attrs map[string]interface{}
		err   string
	}{{
		attrs: map[string]interface{}{"credential": "x"},
		err:   `invalid vault config: address: expected string, got nothing`,
	}, {
		attrs: map[string]interface{}{"address": "https://vault"},
		err:   `invalid vault config: credential: expected string, got nothing`,
	}, {
		attrs: map[string]interface{}{"address": "https://vault", "credential": "x", "auth-method": "ldap"},
		err:   `invalid vault config: auth-method: .*`,
	}, {
		attrs: map[string]interface{}{"address": "https://vault", "credential": "x", "colour": "blue"},
		err:   `invalid vault config: .*colour.*`,
	}, {
		attrs: map[string]interface{}{"address": "vault:8200", "credential": "x"},
		err:   `vault address "vault:8200" without http or https scheme not valid`,
	}, {
		attrs: map[string]interface{}{"address": "https://vault", "credential": ""},
		err:   `empty vault credential not valid`,
	}} {
		c.Logf("test %d", i)
		_, err := vault.NewConfig(t.attrs)
		c.Check(err, gc.ErrorMatches, t.err)
	}
}

func (s *configSuite) TestEnvAttrs(c *gc.C) {
	env := map[string]string{
		"VAULT_ADDR":        "https://vault.example.com:8200",
		"GITHUB_TOKEN":      "ghp_secret",
		"VAULT_SKIP_VERIFY": "true",
	}
	attrs, err := vault.EnvAttrs(func(name string) string { return env[name] })
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(attrs, jc.DeepEquals, map[string]interface{}{
		"address":         "https://vault.example.com:8200",
		"credential":      "ghp_secret",
		"skip-tls-verify": true,
	})
}

func (s *configSuite) TestEnvAttrsBadBool(c *gc.C) {
	_, err := vault.EnvAttrs(func(name string) string {
		if name == "VAULT_SKIP_VERIFY" {
			return "sometimes"
		}
		return ""
	})
	c.Assert(err, jc.ErrorIs, errors.NotValid)
}

func (s *configSuite) TestSchemaDocumentsEnvVars(c *gc.C) {
	fields := vault.ConfigSchema()
	c.Assert(fields["address"].EnvVar, gc.Equals, "VAULT_ADDR")
	c.Assert(fields["credential"].Secret, jc.IsTrue)
}
