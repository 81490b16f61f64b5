package rules

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/adhere/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Source is one rule document before parsing. ID must be unique within
// a load; Ref is the opaque payload reference handed back to callers
// (typically the document's path).
type Source struct {
	ID  string
	Ref string
	Raw []byte
}

// header is the recognized front matter schema. Unknown keys are
// ignored so rule authors can keep their own metadata alongside.
type header struct {
	Patterns []string `yaml:"patterns"`
}

const frontMatterDelimiter = "---"

// parseHeader splits a rule document into its front matter header and
// opaque body. A document without front matter is a universal rule:
// the header is empty and the whole document is body.
func parseHeader(raw []byte) (header, []byte, error) {
	var h header

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() || strings.TrimRight(scanner.Text(), " \t") != frontMatterDelimiter {
		// No front matter at all
		return h, raw, nil
	}

	var meta bytes.Buffer
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimRight(line, " \t") == frontMatterDelimiter {
			closed = true
			break
		}
		meta.WriteString(line)
		meta.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return h, nil, errors.Wrap(err, errors.ErrHeaderParse, "reading front matter")
	}
	if !closed {
		return h, nil, errors.New(errors.ErrHeaderParse, "unterminated front matter")
	}

	if err := yaml.Unmarshal(meta.Bytes(), &h); err != nil {
		// Covers malformed YAML and non-array `patterns` values alike
		return h, nil, errors.Wrap(err, errors.ErrHeaderParse, "invalid front matter")
	}

	var body bytes.Buffer
	for scanner.Scan() {
		body.Write(scanner.Bytes())
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return h, nil, errors.Wrap(err, errors.ErrHeaderParse, "reading body")
	}

	return h, body.Bytes(), nil
}
