package main

import (
	"github.com/NVIDIA/native-recipe/pkg/cli"
)

func main() {
	cli.Execute()
}
