package main

import "github.com/theirongolddev/paisa/cmd"

func main() {
	cmd.Execute()
}
