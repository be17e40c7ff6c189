package sai

import "net"

// AttrID identifies an attribute within the namespace of a single object
// kind. The numeric value is only meaningful alongside an ObjectType.
type AttrID uint32

// SerializationType names the wire encoding of an attribute's value, driven
// by per-(ObjectType, AttrID) metadata (pkg/sai/attr).
type SerializationType int

const (
	SerializationBool SerializationType = iota
	SerializationUint8
	SerializationUint16
	SerializationUint32
	SerializationUint64
	SerializationInt32
	SerializationInt64
	SerializationMAC
	SerializationIPv4
	SerializationIPv6
	SerializationIPAddress
	SerializationIPPrefix
	SerializationCharArray
	SerializationObjectID
	SerializationObjectList
	SerializationUint32List
	SerializationInt32List
	SerializationACLFieldData
	SerializationACLActionData
	SerializationPortBreakout
	SerializationQosMapList
	SerializationTunnelMapList
)

// IPPrefix is an IP address together with a prefix mask, used by attributes
// whose serialization type is SerializationIPPrefix.
type IPPrefix struct {
	Addr net.IP
	Mask net.IP
}

// ACLFieldData mirrors SAI's acl_field_data_t: a matched value, a mask, and
// an enable flag. Exactly one of the scalar/OID/list payload fields is
// populated depending on the field's own nested serialization type; this
// adapter only needs the object-reference shape (Data/Mask as an OID or
// OID-list) since that's the only variant the daemon must rewrite VID<->RID
// on.
type ACLFieldData struct {
	Enable bool
	Data   ObjectID
	List   []ObjectID
	Mask   uint64
	Raw    []byte // non-object scalar payloads, opaque to the codec
}

// ACLActionData mirrors SAI's acl_action_data_t.
type ACLActionData struct {
	Enable bool
	Param  ObjectID
	List   []ObjectID
	Raw    []byte
}

// PortBreakoutMode selects how a port's lanes are grouped on breakout.
type PortBreakoutMode int

// PortBreakout mirrors SAI's port_breakout_t.
type PortBreakout struct {
	Mode     PortBreakoutMode
	PortList []ObjectID
}

// Value is a tagged union: the populated field is selected by the
// attribute's SerializationType, never by inspecting the value itself.
type Value struct {
	Type SerializationType

	Bool   bool
	U8     uint8
	U16    uint16
	U32    uint32
	U64    uint64
	S32    int32
	S64    int64
	MAC    net.HardwareAddr
	IP     net.IP
	Prefix IPPrefix
	Chars  string
	OID    ObjectID
	OIDs   []ObjectID
	U32s   []uint32
	S32s   []int32

	ACLField  ACLFieldData
	ACLAction ACLActionData
	Breakout  PortBreakout

	// QosMapList / TunnelMapList entries: opaque key/value pairs, carried
	// as raw encoded strings since no object under this spec needs to
	// inspect their contents, only round-trip them.
	MapList []string
}

// Attribute is a single (id, value) pair.
type Attribute struct {
	ID    AttrID
	Value Value
}

// Find returns the attribute with the given id, if present.
func Find(attrs []Attribute, id AttrID) (*Attribute, bool) {
	for i := range attrs {
		if attrs[i].ID == id {
			return &attrs[i], true
		}
	}
	return nil, false
}

// MustHave returns StatusMandatoryAttributeMissing if id is not present in
// attrs, otherwise nil.
func MustHave(attrs []Attribute, id AttrID) error {
	if _, ok := Find(attrs, id); !ok {
		return StatusMandatoryAttributeMissing
	}
	return nil
}
