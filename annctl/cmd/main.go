package main

import "gobasera/annctl/pkg/commands"

func main() {
	commands.Execute()
}
