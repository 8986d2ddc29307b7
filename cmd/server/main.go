package main

import (
	"os"

	"github.com/gofiber/fiber/v2/log"

	"sustainbite/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
