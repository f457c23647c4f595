package main

import (
	"github.com/masmgr/gitrelease-go/cmd"
)

func main() {
	cmd.Run()
}
