package main

import (
	"log"

	"github.com/mybuild-dev/mybuild/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
