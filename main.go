package main

import "github.com/KaramelBytes/iris-analyzer/cmd"

func main() {
	cmd.Execute()
}
