package main

import "taskware/internal/cli"

func main() {
	cli.Execute()
}
