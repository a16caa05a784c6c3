package scheme

// Object interface must be supported by all message types registered with Scheme. Message types are
// referenced by name in declarative configs and event stores, the interface lets the Scheme
// stamp the group and kind an object is known under
type Object interface {
	GroupKind() GroupKind
	SetGroupKind(gk *GroupKind)
}

type TypeMeta struct {
	Kind  string `json:"kind,omitempty"`
	Group string `json:"group,omitempty"`
}

func (t TypeMeta) GroupKind() GroupKind {
	return GroupKind{Group: Group(t.Group), Kind: t.Kind}
}

func (t *TypeMeta) SetGroupKind(gk *GroupKind) {
	t.Group = gk.Group.String()
	t.Kind = gk.Kind
}
