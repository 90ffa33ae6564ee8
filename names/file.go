package names

import (
	"fmt"
	"os"
	"strings"
)

// WriteFile writes the list as UTF-8 text, one name per line.
func WriteFile(path string, l List) error {
	if len(l) == 0 {
		return ErrNoNames
	}
	if err := os.WriteFile(path, l.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write names file: %w", err)
	}
	return nil
}

// LoadFile reads a .names file. CRLF line endings are accepted; blank lines and
// lines starting with '#' are skipped.
func LoadFile(path string) (List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out List
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoNames)
	}
	return out, nil
}
