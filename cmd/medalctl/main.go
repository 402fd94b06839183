package main

import "github.com/okian/medalboard/internal/cli"

func main() {
	cli.Execute()
}
