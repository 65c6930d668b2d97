package main

import "city-comparison/cmd"

func main() {
	cmd.Execute()
}
