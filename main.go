// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "uberjar-cli/cmd/uberjar"
)

func main() {
	cmd.Execute()
}
