package main

import "github.com/andrescamacho/ficsit-planner-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
