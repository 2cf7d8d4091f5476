package main

import "github.com/theirongolddev/cfoot/cmd"

func main() {
	cmd.Execute()
}
