package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "health":
		return runHealth(args[1:])
	case "similar":
		return runSimilar(args[1:])
	case "hybrid":
		return runHybrid(args[1:])
	case "foryou":
		return runForYou(args[1:])
	case "watched":
		return runWatched(args[1:])
	case "token":
		return runToken(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "reelrank CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  reelrank <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  health   Verify database and catalog connectivity")
	fmt.Fprintln(os.Stderr, "  similar  Recommend movies similar to one seed movie")
	fmt.Fprintln(os.Stderr, "  hybrid   Recommend movies blended from 2-5 seed movies")
	fmt.Fprintln(os.Stderr, "  foryou   Recommend movies from a user's stored watch history")
	fmt.Fprintln(os.Stderr, "  watched  Record one watched movie for a user")
	fmt.Fprintln(os.Stderr, "  token    Hash an API token for API_TOKEN_HASH")
	fmt.Fprintln(os.Stderr, "  serve    Start Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"reelrank <command> -h\" for command-specific flags.")
}
