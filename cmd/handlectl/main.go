/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command handlectl mints and maintains handles from the shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
