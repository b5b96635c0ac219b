package main

import "github.com/nordalpha/fiindostats/cmd"

func main() {
	cmd.Execute()
}
