package main

import "github.com/quocvuong92/agentsh/cmd"

func main() {
	cmd.Execute()
}
