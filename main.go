package main

import "github.com/uniquekeyboard/keyboardlayout/cmd"

// main is the entry point of the keyboardlayout CLI.
func main() {
	cmd.Execute()
}
