package main

import "stream-manager/cmd"

func main() {
	cmd.Execute()
}
