// Package attr implements the attribute codec (C2): given an object kind
// and attribute id, it knows the attribute's wire serialization type, and
// it can serialize/deserialize a whole attribute list to and from the bus's
// (name, value-string) field format.
package attr

import (
	"fmt"

	"github.com/opencompute/go-sairedis/pkg/sai"
)

// key identifies one metadata row.
type key struct {
	Kind sai.ObjectType
	ID   sai.AttrID
}

// entry is one row of the static metadata table: the attribute's canonical
// bus field name and its serialization type.
type entry struct {
	Name string
	Type sai.SerializationType
}

var table = map[key]entry{}

// Register adds a metadata row. Called from init() in ids.go; exported
// so tests and the daemon's SDK fake can extend the table with vendor or
// test-only attributes without touching this file.
func Register(kind sai.ObjectType, id sai.AttrID, name string, t sai.SerializationType) {
	table[key{kind, id}] = entry{Name: name, Type: t}
}

// SerializationTypeOf returns the serialization type for (kind, id). The
// daemon treats a miss as fatal (programmer error / unknown metadata); the
// library treats it as a user error.
func SerializationTypeOf(kind sai.ObjectType, id sai.AttrID) (sai.SerializationType, error) {
	e, ok := table[key{kind, id}]
	if !ok {
		return 0, fmt.Errorf("no serialization metadata for kind=%s attr=%d", kind, id)
	}
	return e.Type, nil
}

// NameOf returns the canonical bus field name for (kind, id).
func NameOf(kind sai.ObjectType, id sai.AttrID) (string, error) {
	e, ok := table[key{kind, id}]
	if !ok {
		return "", fmt.Errorf("no serialization metadata for kind=%s attr=%d", kind, id)
	}
	return e.Name, nil
}

// IDByName is the inverse of NameOf, used when deserializing a field list
// back into an attribute list.
func IDByName(kind sai.ObjectType, name string) (sai.AttrID, sai.SerializationType, error) {
	for k, e := range table {
		if k.Kind == kind && e.Name == name {
			return k.ID, e.Type, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown attribute name %q for kind=%s", name, kind)
}

// IsObjectReference reports whether a serialization type carries one or
// more VIDs/RIDs that the daemon must rewrite on the way in or out.
func IsObjectReference(t sai.SerializationType) bool {
	switch t {
	case sai.SerializationObjectID,
		sai.SerializationObjectList,
		sai.SerializationACLFieldData,
		sai.SerializationACLActionData,
		sai.SerializationPortBreakout:
		return true
	default:
		return false
	}
}
