package main

import "primer/cmd/client/cmd"

func main() {
	cmd.Execute()
}
