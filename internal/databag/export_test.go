// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package databag

import "github.com/juju/utils/v4/exec"

// SetRunner replaces the function used to run knife.
func SetRunner(s *KnifeSource, run func(exec.RunParams) (*exec.ExecResponse, error)) {
	s.run = run
}
