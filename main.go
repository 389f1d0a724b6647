package main

import "github.com/josephlewis42/dmsh/cmd"

func main() {
	cmd.Execute()
}
