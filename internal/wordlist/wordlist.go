// Package wordlist loads custom kana pools from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPool reads kana from the provided file path. Each non-comment line may
// hold one or more symbols; duplicates and symbols without romaji are dropped.
func LoadPool(path string) ([]rune, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only pool file.
			_ = cerr
		}
	}()

	var pool []rune
	seen := map[rune]struct{}{}
	keep := FilterKnown()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, r := range normalizeLine(line) {
			if !keep(r) {
				continue
			}
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			pool = append(pool, r)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("kana pool is empty")
	}
	return pool, nil
}
