package main

import "github.com/mindvr/reststyle/internal/cli"

func main() {
	cli.Execute()
}
