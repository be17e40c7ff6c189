package sai

import "fmt"

// vidTypeShift is the bit position of the object-type field within a VID.
// The upper 16 bits carry the type, the lower 48 bits carry a monotonic
// counter drawn from the shared translation store.
const vidTypeShift = 48

const vidCounterMask = (uint64(1) << vidTypeShift) - 1

// ObjectID is a Virtual Object Identifier (VID): a stable, library-owned
// handle. It is a distinct type from RealID so the two address spaces can
// never be mixed up by the Go compiler.
type ObjectID uint64

// NullObjectID is the reserved value meaning "no object".
const NullObjectID ObjectID = 0

// RealID is a Real Object Identifier (RID): opaque, produced by the vendor
// SDK, meaningful only inside the daemon process.
type RealID uint64

// NullRealID is the reserved value meaning "no object".
const NullRealID RealID = 0

// PackVID builds a VID from an object type and a monotonic counter value.
// The invariant type_of(PackVID(t, c)) == t holds for every valid t and
// every c that fits in 48 bits.
func PackVID(t ObjectType, counter uint64) ObjectID {
	return ObjectID((uint64(t) << vidTypeShift) | (counter & vidCounterMask))
}

// TypeOf extracts the object kind encoded in a VID. This is a pure bit
// extraction: it must always agree with what the daemon would report for
// the same object via the vendor SDK's type-query call.
func (id ObjectID) TypeOf() ObjectType {
	return ObjectType(uint64(id) >> vidTypeShift)
}

// CounterOf extracts the monotonic counter component of a VID.
func (id ObjectID) CounterOf() uint64 {
	return uint64(id) & vidCounterMask
}

// IsNull reports whether id is the reserved null VID.
func (id ObjectID) IsNull() bool {
	return id == NullObjectID
}

// String renders a VID as 16 lowercase hex characters, the canonical
// object-ref form used in bus keys and translation-store fields.
func (id ObjectID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ParseObjectID parses the canonical hex form produced by String.
func ParseObjectID(s string) (ObjectID, error) {
	var v uint64
	if _, err := fmt.Sscanf(s, "%x", &v); err != nil {
		return 0, fmt.Errorf("parse object id %q: %w", s, err)
	}
	return ObjectID(v), nil
}

// IsNull reports whether id is the reserved null RID.
func (id RealID) IsNull() bool {
	return id == NullRealID
}

// String renders a RID as 16 lowercase hex characters.
func (id RealID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ParseRealID parses the canonical hex form produced by String.
func ParseRealID(s string) (RealID, error) {
	var v uint64
	if _, err := fmt.Sscanf(s, "%x", &v); err != nil {
		return 0, fmt.Errorf("parse real id %q: %w", s, err)
	}
	return RealID(v), nil
}

// VlanID is a canonical VLAN identity. Introduced per the reimplementation
// decision in DESIGN.md to stop mixing VID and raw vlan-id bookkeeping: a
// VLAN's identity is always this type, never an ObjectID.
type VlanID uint16

// DefaultVlanID is the VLAN that exists before any create_vlan call and can
// never be removed.
const DefaultVlanID VlanID = 1

// MaxVlanID is the highest permitted VLAN identifier.
const MaxVlanID VlanID = 4094
