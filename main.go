package main

import "github.com/notargets/gosoh/cmd"

func main() {
	cmd.Execute()
}
