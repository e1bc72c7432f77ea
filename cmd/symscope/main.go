package main

import (
	"github.com/symscope/symscope/internal/cli"
)

func main() {
	cli.Execute()
}
