// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"os"

	"github.com/juju/bagsync/cmd/bagsync/commands"
)

func main() {
	os.Exit(commands.Main(os.Args))
}
