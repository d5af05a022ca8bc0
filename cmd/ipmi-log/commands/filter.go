package commands

import (
	"fmt"
	"io"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// RunFilter copies the selected events of path into a new capture file at
// output. It returns the number of events written.
func RunFilter(path, output string, sel Selection) (int, error) {
	if output == "" {
		return 0, fmt.Errorf("output file required")
	}
	reader, err := sel.open(path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
