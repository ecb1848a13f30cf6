package main

import (
	"github.com/partygames/clockin/internal/cli"
)

func main() {
	cli.Execute()
}
