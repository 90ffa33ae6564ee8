package names

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const blockKey = "names:"

var (
	inlineRe    = regexp.MustCompile(`names\s*:\s*\{([^}]*)\}`)
	blockIdxRe  = regexp.MustCompile(`^(\d+)\s*:\s*(.+?)\s*(#.*)?$`)
	blockItemRe = regexp.MustCompile(`^-\s*(.+?)\s*(#.*)?$`)

	// Every line boundary a text file may carry, including classic Mac CR endings.
	lineBreaks = strings.NewReplacer(
		"\r\n", "\n", "\r", "\n",
		"\v", "\n", "\f", "\n",
		"\x1c", "\n", "\x1d", "\n", "\x1e", "\n",
		"\u0085", "\n", "\u2028", "\n", "\u2029", "\n",
	)
)

func splitLines(text string) []string {
	return strings.Split(lineBreaks.Replace(text), "\n")
}

// unquote trims whitespace and any surrounding quote characters.
func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// ParseInline reads the first brace mapping, e.g. `names: {0: person, 1: "bicycle"}`.
// Tokens whose index is not an integer are skipped.
func ParseInline(text string) *Table {
	t := NewTable()
	m := inlineRe.FindStringSubmatch(text)
	if m == nil {
		return t
	}
	for _, tok := range strings.Split(m[1], ",") {
		tok = strings.TrimSpace(tok)
		key, val, ok := strings.Cut(tok, ":")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		t.Set(idx, unquote(val))
	}
	return t
}

// ParseBlock reads the indented lines following the first `names:` key. Both
// `<index>: <value>` and `- <value>` entries are accepted, trailing `#` comments are
// dropped, and the block ends at the next top-level key.
func ParseBlock(text string) *Table {
	return parseBlockInto(NewTable(), text)
}

// parseBlockInto adds block entries to t, so list items land after any slot t already holds.
func parseBlockInto(t *Table, text string) *Table {
	_, after, ok := strings.Cut(text, blockKey)
	if !ok {
		return t
	}
	lines := splitLines(after)
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if topLevelKey(line, trimmed) {
			break
		}
		if m := blockIdxRe.FindStringSubmatch(trimmed); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			t.Set(idx, unquote(m[2]))
			continue
		}
		if m := blockItemRe.FindStringSubmatch(trimmed); m != nil {
			t.Append(unquote(m[1]))
		}
	}
	return t
}

func topLevelKey(line, trimmed string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsSpace(first) {
		return false
	}
	return strings.Contains(trimmed, ":") && !strings.HasPrefix(trimmed, "-")
}

// Extract tries the inline form first and falls back to the block form only when the
// inline form yielded nothing. Names from the two forms are never merged; only the
// empty slots of the inline form carry over and push block list items past them.
func Extract(text string) (List, Shape, error) {
	t := ParseInline(text)
	if !t.Empty() {
		return t.Compact(), ShapeInline, nil
	}
	if t = parseBlockInto(t, text); !t.Empty() {
		return t.Compact(), ShapeBlock, nil
	}
	return nil, ShapeNone, ErrNoNames
}
