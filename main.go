// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/3000studios/themepack/cmd/themepack"

func main() {
	cmd.Execute()
}
