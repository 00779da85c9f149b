package main

import "github.com/mrsingh-rishi/reflect-relay/cli"

func main() {
	cli.Execute()
}
