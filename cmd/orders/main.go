package main

import (
	"os"

	"github.com/idilsaglam/orders/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
