package main

import "geotree/cmd"

func main() {
	cmd.Execute()
}
