package main

import "github.com/Ning0612/drawfolders/cmd/drawfolders/cmd"

func main() {
	cmd.Execute()
}
