package main

import "github.com/thingbus/thingbus/pkg/cli"

func main() {
	cli.Execute()
}
