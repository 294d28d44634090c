// Rule library files.
//
// A library is a line-oriented text file. Everything is lower-cased before
// parsing. "//" starts a comment, either on its own line or trailing.
// "group:<type>" sets the type for the lines that follow it; lines before
// the first group are ignored. Inside a group:
//
//	c:<text>   name contains text
//	p:<regex>  name matches the regular expression as written
//	<text>     name is exactly text
//
// Literal text is regex-escaped, so names like "lacZ(alpha)" need no
// quoting.
package gck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DefaultLibrary is the library file name looked up when none is given.
const DefaultLibrary = "DefaultLibrary.lb"

// LoadLibrary reads and compiles a rule library file.
func LoadLibrary(path string) (Rules, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rules, err := ParseLibrary(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseLibrary compiles the rules in a library read from r, in file order.
func ParseLibrary(r io.Reader) (Rules, error) {
	var (
		rules Rules
		group string
		ln    int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln++
		line := strings.ToLower(sc.Text())
		if strings.HasPrefix(line, "//") {
			continue
		}
		line, _, _ = strings.Cut(line, "//")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "group:"); ok {
			group = strings.TrimSpace(rest)
			if _, err := ParseRegionType(group); err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
			continue
		}
		if group == "" {
			continue
		}

		var pattern string
		switch {
		case strings.HasPrefix(line, "c:"):
			pattern = regexp.QuoteMeta(line[2:])
		case strings.HasPrefix(line, "p:"):
			pattern = line[2:]
		default:
			pattern = "^" + regexp.QuoteMeta(line) + "$"
		}
		rule, err := NewRule(pattern, group)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		rules = append(rules, rule)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
