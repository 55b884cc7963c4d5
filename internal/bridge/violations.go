// Package bridge translates fused operator subgraphs into accelerator
// descriptors and answers capability queries for them. Every constraint
// check is accumulated rather than short-circuited, so one extraction pass
// reports all of a subgraph's problems at once.
package bridge

import (
	"fmt"
	"strings"
)

// Violations collects constraint failures found while extracting a pattern.
// The zero value means success. Merging is monoidal: the empty value is an
// identity and merge order matches check order.
type Violations struct {
	reasons []string
}

// Violationf builds a Violations holding a single formatted reason.
func Violationf(format string, args ...any) Violations {
	return Violations{reasons: []string{fmt.Sprintf(format, args...)}}
}

// Addf appends one formatted reason.
func (v *Violations) Addf(format string, args ...any) {
	v.reasons = append(v.reasons, fmt.Sprintf(format, args...))
}

// Merge appends all of o's reasons to v.
func (v *Violations) Merge(o Violations) {
	v.reasons = append(v.reasons, o.reasons...)
}

// Failed reports whether any violation was recorded.
func (v Violations) Failed() bool {
	return len(v.reasons) > 0
}

// Reasons returns the recorded violations in the order they were found.
func (v Violations) Reasons() []string {
	return v.reasons
}

func (v Violations) String() string {
	return strings.Join(v.reasons, "; ")
}
