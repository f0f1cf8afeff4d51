// SPDX-License-Identifier: MPL-2.0

package main

import cmd "catalogctl/cmd/catalogctl"

func main() {
	cmd.Execute()
}
