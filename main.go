// SPDX-License-Identifier: MPL-2.0

package main

import cmd "hoards-cli/cmd/hoards"

func main() {
	cmd.Execute()
}
