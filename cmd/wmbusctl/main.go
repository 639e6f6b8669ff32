package main

import "github.com/wmbusd/wmbusd/cmd/wmbusctl/commands"

func main() {
	commands.Execute()
}
