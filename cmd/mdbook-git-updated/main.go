package main

import "github.com/younata/mdbook-git-atom/internal/cli"

func main() {
	cli.Execute(cli.NewUpdatedCommand())
}
