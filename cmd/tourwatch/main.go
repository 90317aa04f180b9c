package main

import "github.com/pfrederiksen/tourwatch/internal/cli"

func main() {
	cli.Execute()
}
