// SPDX-License-Identifier: MPL-2.0

// hatk is the harmonic analysis toolkit CLI.
package main

import cmd "hatk-cli/cmd/hatk"

func main() {
	cmd.Execute()
}
