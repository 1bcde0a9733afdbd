// Command dsdm manages dotfile modules.
package main

import "github.com/cameronsjo/dsdm/internal/cmd"

func main() {
	cmd.Execute()
}
