// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vault

import (
	"net/http"
	"strings"

	"github.com/hashicorp/vault/api"
	"github.com/juju/errors"
)

const (
	// PermissionDenied is returned when vault rejects the token.
	PermissionDenied = errors.ConstError("permission denied")

	// Sealed is returned when vault is initialised but sealed.
	Sealed = errors.ConstError("vault sealed")

	// NotAuthenticated is returned when no usable token could be obtained.
	NotAuthenticated = errors.ConstError("not authenticated")
)

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *api.ResponseError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	// Sadly we can just get a string from the api.
	return strings.Contains(err.Error(), "no secret found")
}

func maybePermissionDenied(err error) error {
	if isPermissionDenied(err) {
		return errors.WithType(err, PermissionDenied)
	}
	return err
}

func isPermissionDenied(err error) bool {
	var apiErr *api.ResponseError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
