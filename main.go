package main

import (
	"fmt"
	"os"

	"muserc/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "muserc:", err)
		os.Exit(1)
	}
}
