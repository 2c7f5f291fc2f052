package main

import "ytshorts/internal/cli"

func main() {
	cli.Main()
}
