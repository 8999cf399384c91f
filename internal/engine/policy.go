package engine

import (
	"fmt"
	"strings"
)

// Policy decides what happens to lines that fail to parse.
type Policy string

const (
	// PolicyLenient drops malformed lines and continues the run.
	PolicyLenient Policy = "lenient"

	// PolicyStrict fails the run on the first malformed line.
	PolicyStrict Policy = "strict"
)

// ValidPolicies lists the accepted policy names.
var ValidPolicies = []Policy{PolicyLenient, PolicyStrict}

// ParsePolicy accepts "lenient" or "strict" (case-insensitive).
// An empty string selects PolicyLenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyLenient):
		return PolicyLenient, nil
	case string(PolicyStrict):
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("invalid policy %q: must be one of %v", s, ValidPolicies)
	}
}
