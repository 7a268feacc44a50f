package main

import "github.com/giarcheuli/docparser/cmd"

func main() {
	cmd.Execute()
}
