package main

import (
	"log"
	"os"

	"github.com/ivlev/sceneclock/internal/cli"
	"github.com/ivlev/sceneclock/internal/system"
)

func main() {
	system.InitResourceLimits()

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Printf("[-] %v", err)
		os.Exit(cli.GetExitCode(err))
	}
}
