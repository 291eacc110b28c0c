package main

import "asset-forecast/cmd"

func main() {
	cmd.Execute()
}
