// Feature classification rules.
//
// A rule pairs a regular expression with a RegionType. Rules are searched
// (not anchored unless the pattern anchors itself) against the lower-cased
// feature name, case-insensitively, and every matching rule is applied in
// list order, so the last match wins. A compiled Rules value is never
// modified and may be shared by concurrent decodes.
package gck

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule classifies features whose name matches Pattern as Type.
type Rule struct {
	Pattern *regexp.Regexp
	Type    RegionType
}

// Rules is an ordered rule list.
type Rules []Rule

// NewRule compiles pattern and resolves typeName.
func NewRule(pattern, typeName string) (Rule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	t, err := ParseRegionType(typeName)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: re, Type: t}, nil
}

// CompileRules compiles (pattern, type name) pairs in order. The first
// invalid pattern or unknown type fails the whole list.
func CompileRules(pairs [][2]string) (Rules, error) {
	rules := make(Rules, 0, len(pairs))
	for i, p := range pairs {
		r, err := NewRule(p[0], p[1])
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Classify returns the type of the last rule matching name. ok is false
// when no rule matches.
func (rs Rules) Classify(name string) (t RegionType, ok bool) {
	lower := strings.ToLower(name)
	for _, r := range rs {
		if r.Pattern.MatchString(lower) {
			t, ok = r.Type, true
		}
	}
	return t, ok
}

// apply reclassifies ft if any rule matches its name.
func (rs Rules) apply(ft *Feature) {
	if t, ok := rs.Classify(ft.Name); ok {
		ft.Type = t
	}
}

// String lists the rules one per line, pattern then type.
func (rs Rules) String() string {
	var b strings.Builder
	for _, r := range rs {
		fmt.Fprintf(&b, "%s\t%s\n", strings.TrimPrefix(r.Pattern.String(), "(?i)"), r.Type)
	}
	return b.String()
}
