package main

import "github.com/brk3/cadence/cmd"

func main() {
	cmd.Execute()
}
