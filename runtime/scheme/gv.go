package scheme

import (
	"strings"

	"github.com/pkg/errors"
)

// Group is a namespace of message kinds, usually the name of the bounded context that owns them
type Group string

// Empty returns true if group is empty
func (gv Group) Empty() bool {
	return len(gv) == 0
}

// String puts "group" into a string, it's possible in the future for this type to change
func (gv Group) String() string {
	return string(gv)
}

// GroupKind specifies a Group and a Kind
type GroupKind struct {
	Group Group
	Kind  string
}

func (gk GroupKind) Empty() bool {
	return gk.Group.Empty() && len(gk.Kind) == 0
}

func (gk GroupKind) String() string {
	if len(gk.Group) == 0 {
		return gk.Kind
	}
	return gk.Group.String() + "." + gk.Kind
}

// Identifier used as uniq key in schema
func (gk GroupKind) Identifier() string {
	return gk.String()
}

// ParseGroupKind is the reverse of GroupKind.String. The kind is everything after the last dot,
// so groups may contain dots themselves.
func ParseGroupKind(s string) (GroupKind, error) {
	idx := strings.LastIndex(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return GroupKind{}, errors.Errorf("%q is not a valid group.Kind", s)
	}

	return GroupKind{Group: Group(s[:idx]), Kind: s[idx+1:]}, nil
}
