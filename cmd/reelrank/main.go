package main

import (
	"os"

	"reelrank/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
