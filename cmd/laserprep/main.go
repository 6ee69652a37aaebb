package main

import "github.com/ethanjli/onshape-laser-cutting/internal/cli"

func main() {
	cli.Execute()
}
