// Package main is the entry point for the courseadm CLI binary.
package main

import (
	"os"

	_ "github.com/mattn/go-sqlite3"

	cli "github.com/pnoren1/Course-App-sub003/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
