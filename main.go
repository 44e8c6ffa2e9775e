package main

import "github.com/khanhnv2901/webscan-cli/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
