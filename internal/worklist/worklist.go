// Package worklist loads the plain-text file naming the items a run
// processes, one URL or identifier per line.
package worklist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Item is one unit of work as listed in the work list file.
type Item struct {
	// Ref is the URL or identifier exactly as listed, after trimming.
	Ref string
	// Line is the 1-based line number the item came from.
	Line int
}

// Load reads the work list at path. Blank lines are skipped, surrounding
// whitespace is trimmed, and exact repeats collapse to their first
// occurrence so one item never runs twice in a single pass. An empty result
// is an error: a run with nothing to do points at a misconfigured path.
func Load(path string) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open work list: %w", err)
	}
	defer file.Close()

	items, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("read work list %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("work list %s contains no items", path)
	}
	return items, nil
}

func parse(r io.Reader) ([]Item, error) {
	var items []Item
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		ref := strings.TrimSpace(scanner.Text())
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		items = append(items, Item{Ref: ref, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
