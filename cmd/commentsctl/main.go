// Command commentsctl classifies a pasted comment block offline and prints a
// sentiment report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"CommentsAnalyzer/pkg/logger"
)

func main() {
	var (
		file    = flag.String("file", "", "read the comment block from this file instead of stdin")
		title   = flag.String("title", "", "article title used for categorization")
		lead    = flag.String("lead", "", "article lead used for categorization")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	log := logger.New("commentsctl", *verbose)

	raw, err := readInput(*file, os.Stdin)
	if err != nil {
		log.Error("read input", "err", err)
		os.Exit(1)
	}
	log.Debug("input loaded", "bytes", len(raw))

	rep, err := analyze(context.Background(), string(raw), *title, *lead, logger.Slog(log))
	if errors.Is(err, errNoComments) {
		log.Warn("no comments found in input")
		os.Exit(1)
	}
	if err != nil {
		log.Error("analyze", "err", err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stdout, render(rep))
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
