package main

import "github.com/chriserin/define/cmd"

func main() {
	cmd.Execute()
}
