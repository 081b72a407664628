package main

import "sevsuctl/cmd"

func main() {
	cmd.Execute()
}
