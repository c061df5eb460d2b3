package main

import "github.com/room4-2/frontdesk/cli"

func main() {
	cli.Execute()
}
