package main

import "taglattice/cmd"

func main() {
	cmd.Execute()
}
