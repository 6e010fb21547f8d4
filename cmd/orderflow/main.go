package main

import "github.com/minhph/orderflow/internal/cli"

func main() {
	cli.Execute()
}
