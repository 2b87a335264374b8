package planfile

import (
	"bytes"
	"errors"
)

var (
	// ErrMissingFrontMatter indicates a Markdown plan did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("planfile: missing frontmatter")
	// ErrMalformedFrontMatter indicates the opening fence was never closed.
	ErrMalformedFrontMatter = errors.New("planfile: malformed frontmatter")
)

// splitFrontMatter separates the `---` fenced YAML header of a Markdown
// document from its body.
func splitFrontMatter(content []byte) ([]byte, []byte, error) {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, nil, ErrMissingFrontMatter
	}
	rest := normalized[4:]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return nil, rest[4:], nil
	}
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-4], nil, nil
		}
		return nil, nil, ErrMalformedFrontMatter
	}
	return parts[0], parts[1], nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
