// Command convert runs a bulk conversion offline: it reads one input per
// line from a file or stdin, converts each line through the transform API,
// and prints the numbered export block to stdout. The exit code is non-zero
// when any line failed.
//
// Usage:
//
//	go run ./cmd/convert -direction wgs84-to-grid -in coords.txt
//	echo "KK369077" | go run ./cmd/convert -direction grid-to-wgs84
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hktools/hk-grid-service/internal/adapter/geodetic"
	"github.com/hktools/hk-grid-service/internal/convert"
	"github.com/hktools/hk-grid-service/internal/observability"
)

func main() {
	direction := flag.String("direction", string(convert.DirectionForward), "conversion direction: wgs84-to-grid or grid-to-wgs84")
	inPath := flag.String("in", "-", "input file, one coordinate or grid reference per line (- for stdin)")
	baseURL := flag.String("base-url", geodetic.DefaultBaseURL, "transform API base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "transform API request timeout")
	flag.Parse()

	if code := run(*direction, *inPath, *baseURL, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(direction, inPath, baseURL string, timeout time.Duration) int {
	dir, err := convert.ParseDirection(direction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 2
	}

	text, err := readInput(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting() // one-shot run, nothing scrapes the registry

	client := geodetic.NewClient(baseURL, timeout, metrics, logger)
	transformer := geodetic.NewCachedTransformer(client, 1000, metrics)
	service := convert.NewService(transformer, logger, metrics)

	result := service.Bulk(context.Background(), dir, text)
	fmt.Print(result.DownloadText)

	failures := 0
	for _, row := range result.Rows {
		if row.Status == convert.StatusError {
			failures++
		}
	}
	fmt.Fprintf(os.Stderr, "converted %d lines, %d failed\n", len(result.Rows), failures)
	if failures > 0 {
		return 1
	}
	return 0
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
