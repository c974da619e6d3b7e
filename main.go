package main

import "github.com/skoskinen/biblio/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
