package main

import (
	"os"

	"github.com/pojntfx/stchgr/cmd/stchgr/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
