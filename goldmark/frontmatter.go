package goldmark

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// frontMatter detects a YAML block fenced by "---" at the very start of the
// source and closed by "---" or "...". end is the offset just past the
// closing fence line. Blocks that do not decode as a YAML mapping are left
// to the markdown parser.
func frontMatter(source []byte) (end int, meta string, ok bool) {
	first, rest, found := cutLine(source)
	if !found || string(bytes.TrimRight(first, " \t\r")) != "---" {
		return 0, "", false
	}
	pos := len(source) - len(rest)
	bodyStart := pos
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		trimmed := string(bytes.TrimRight(line, " \t\r"))
		lineEnd := len(source) - len(next)
		if trimmed == "---" || trimmed == "..." {
			body := source[bodyStart:pos]
			var m map[string]any
			if err := yaml.Unmarshal(body, &m); err != nil {
				return 0, "", false
			}
			return lineEnd, string(body), true
		}
		pos = lineEnd
		rest = next
	}
	return 0, "", false
}

// cutLine splits off the first line. found reports whether it ended with a
// newline.
func cutLine(b []byte) (line, rest []byte, found bool) {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, false
}

// maskFrontMatter returns a copy of source with everything before end except
// newlines replaced by spaces.
func maskFrontMatter(source []byte, end int) []byte {
	out := bytes.Clone(source)
	for i := 0; i < end; i++ {
		if out[i] != '\n' {
			out[i] = ' '
		}
	}
	return out
}
