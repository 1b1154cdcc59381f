// Package resource defines the value types flowing between discovery,
// verification and deletion.
package resource

import "github.com/infrahouse/tagsweep/internal/arn"

// Existence is the verification state of a discovered resource. It only
// ever moves from Unknown to Exists or Absent, never back.
type Existence int

const (
	Unknown Existence = iota
	Exists
	Absent
)

func (e Existence) String() string {
	switch e {
	case Exists:
		return "exists"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// Tagged is one resource returned by the directory. Identity is nil when
// the raw ARN could not be parsed; such resources are still carried through
// the run and treated as existing.
type Tagged struct {
	Identity  *arn.Identity
	Raw       string
	Tags      map[string]string
	Existence Existence
}

// Outcome is the result of one deletion attempt. It is produced once and
// consumed immediately by the reporting layer.
type Outcome struct {
	Succeeded bool
	Detail    string
}
