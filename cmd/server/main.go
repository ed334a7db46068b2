package main

import "primer/cmd/server/cmd"

func main() {
	cmd.Execute()
}
