package main

import "github.com/rking788/warmind-advisors/cli"

func main() {
	cli.Execute()
}
