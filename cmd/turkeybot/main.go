package main

import "github.com/mcoot/turkeybot/internal/cli"

func main() {
	cli.Execute()
}
