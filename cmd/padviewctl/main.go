// The padviewctl command provides a command-line interface for observing and
// controlling padview countdown displays.
package main

import "github.com/padview/padview/internal/padviewctl/cmd"

func main() {
	cmd.Execute()
}
