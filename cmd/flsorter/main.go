// SPDX-License-Identifier: MPL-2.0

// flsorter sorts plugins into FL Studio plugin database groups.
package main

import "flsorter/internal/cli"

func main() {
	cli.Execute()
}
