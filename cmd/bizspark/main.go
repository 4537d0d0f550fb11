package main

import "github.com/iksnae/bizspark-chat/cmd"

func main() {
	cmd.Execute()
}
