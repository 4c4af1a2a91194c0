package main

import "github.com/dockv/dockv/cmd"

func main() {
	cmd.Execute()
}
