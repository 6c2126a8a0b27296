package main

import "github.com/askh-dev/askh/cmd"

func main() {
	cmd.Execute()
}
