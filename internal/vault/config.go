// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vault

import (
	"net/url"
	"strconv"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
)

const (
	AddressKey       = "address"
	CredentialKey    = "credential"
	AuthMethodKey    = "auth-method"
	CACertKey        = "ca-cert"
	SkipTLSVerifyKey = "skip-tls-verify"
)

const (
	// AuthGitHub exchanges a GitHub personal access token for a vault token.
	AuthGitHub = "github"

	// AuthToken uses the credential as a vault token.
	AuthToken = "token"
)

var configSchema = environschema.Fields{
	AddressKey: {
		Description: "The vault server address.",
		Type:        environschema.Tstring,
		Mandatory:   true,
		EnvVar:      "VAULT_ADDR",
	},
	CredentialKey: {
		Description: "The credential used to log in to vault.",
		Type:        environschema.Tstring,
		Mandatory:   true,
		Secret:      true,
		EnvVar:      "GITHUB_TOKEN",
	},
	AuthMethodKey: {
		Description: "How the credential is used to log in.",
		Type:        environschema.Tstring,
		Values:      []interface{}{AuthGitHub, AuthToken},
		EnvVar:      "BAGSYNC_AUTH_METHOD",
	},
	CACertKey: {
		Description: "Path to a CA certificate used to verify the vault server.",
		Type:        environschema.Tstring,
		EnvVar:      "VAULT_CACERT",
	},
	SkipTLSVerifyKey: {
		Description: "Do not verify the vault server certificate.",
		Type:        environschema.Tbool,
		EnvVar:      "VAULT_SKIP_VERIFY",
	},
}

var configDefaults = schema.Defaults{
	AuthMethodKey:    AuthGitHub,
	CACertKey:        "",
	SkipTLSVerifyKey: false,
}

// Config holds everything needed to reach and log in to vault.
type Config struct {
	Address       string
	Credential    string
	AuthMethod    string
	CACert        string
	SkipTLSVerify bool
}

// NewConfig validates attrs and returns the resulting Config.
func NewConfig(attrs map[string]interface{}) (Config, error) {
	fields, defaults, err := configSchema.ValidationSchema()
	if err != nil {
		return Config{}, errors.Trace(err)
	}
	for k, v := range configDefaults {
		defaults[k] = v
	}
	coerced, err := schema.StrictFieldMap(fields, defaults).Coerce(attrs, nil)
	if err != nil {
		return Config{}, errors.Annotate(err, "invalid vault config")
	}
	valid := coerced.(map[string]interface{})
	cfg := Config{
		Address:       valid[AddressKey].(string),
		Credential:    valid[CredentialKey].(string),
		AuthMethod:    valid[AuthMethodKey].(string),
		CACert:        valid[CACertKey].(string),
		SkipTLSVerify: valid[SkipTLSVerifyKey].(bool),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.NotValidf("empty vault address")
	}
	u, err := url.Parse(c.Address)
	if err != nil {
		return errors.Annotatef(err, "vault address %q", c.Address)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NotValidf("vault address %q without http or https scheme", c.Address)
	}
	if c.Credential == "" {
		return errors.NotValidf("empty vault credential")
	}
	switch c.AuthMethod {
	case AuthGitHub, AuthToken:
	default:
		return errors.NotValidf("auth method %q", c.AuthMethod)
	}
	return nil
}

// EnvAttrs returns config attributes taken from the environment
// variables named in the config schema. Unset variables are omitted.
func EnvAttrs(getenv func(string) string) (map[string]interface{}, error) {
	attrs := make(map[string]interface{})
	for name, field := range configSchema {
		value := getenv(field.EnvVar)
		if value == "" {
			continue
		}
		if field.Type != environschema.Tbool {
			attrs[name] = value
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.NotValidf("%s value %q", field.EnvVar, value)
		}
		attrs[name] = b
	}
	return attrs, nil
}

// ConfigSchema returns the fields a vault config may hold.
func ConfigSchema() environschema.Fields {
	return configSchema
}
