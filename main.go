package main

import (
	"os"

	"github.com/minho-jung/kidlearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
