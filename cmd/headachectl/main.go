package main

import "github.com/Znerf/headacheFront/internal/cli"

func main() {
	cli.Execute()
}
