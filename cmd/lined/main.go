package main

import "lined/cmd/lined/cmd"

func main() {
	cmd.Execute()
}
