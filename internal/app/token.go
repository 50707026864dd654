package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"reelrank/internal/auth"
)

func runToken(args []string) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	value := fs.String("value", "", "Token to hash for API_TOKEN_HASH")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if strings.TrimSpace(*value) == "" {
		fmt.Fprintln(os.Stderr, "--value is required")
		return 2
	}

	hash, err := auth.HashToken(*value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash token: %v\n", err)
		return 1
	}

	fmt.Println(hash)
	return 0
}
