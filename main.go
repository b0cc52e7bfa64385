package main

import (
	"Rewind/cmd"
)

func main() {
	cmd.Execute()
	// If Execute() had a problem, Cobra already called os.Exit with a
	// non-zero code. Reaching here means the command finished cleanly.
}
