package main

import "github.com/IannnnnW/ambso-site/pkg/commands"

func main() {
	commands.Execute()
}
