package main

import "github.com/ridoystarlord/tablegen/cmd"

func main() {
	cmd.Execute()
}
