package attr

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/opencompute/go-sairedis/pkg/sai"
)

// Field is one (name, value-string) pair as carried on the bus.
type Field struct {
	Name  string
	Value string
}

// Serialize encodes attrs into the bus wire format for kind. Only the
// requested attribute id's own metadata is consulted per entry — callers
// that need to serialize only counts (the BUFFER_OVERFLOW path) should
// pre-truncate list fields in Value before calling Serialize.
func Serialize(kind sai.ObjectType, attrs []sai.Attribute) ([]Field, error) {
	fields := make([]Field, 0, len(attrs))
	for _, a := range attrs {
		name, err := NameOf(kind, a.ID)
		if err != nil {
			return nil, err
		}
		declared, err := SerializationTypeOf(kind, a.ID)
		if err != nil {
			return nil, err
		}
		if a.Value.Type != declared {
			return nil, fmt.Errorf("attribute %s: value tagged %v, metadata says %v", name, a.Value.Type, declared)
		}
		vs, err := serializeValue(a.Value)
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: vs})
	}
	return fields, nil
}

// Deserialize is the inverse of Serialize.
func Deserialize(kind sai.ObjectType, fields []Field) ([]sai.Attribute, error) {
	attrs := make([]sai.Attribute, 0, len(fields))
	for _, f := range fields {
		id, typ, err := IDByName(kind, f.Name)
		if err != nil {
			return nil, err
		}
		val, err := deserializeValue(typ, f.Value)
		if err != nil {
			return nil, fmt.Errorf("deserialize %s: %w", f.Name, err)
		}
		attrs = append(attrs, sai.Attribute{ID: id, Value: val})
	}
	return attrs, nil
}

func serializeValue(v sai.Value) (string, error) {
	switch v.Type {
	case sai.SerializationBool:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case sai.SerializationUint8:
		return strconv.FormatUint(uint64(v.U8), 16), nil
	case sai.SerializationUint16:
		return strconv.FormatUint(uint64(v.U16), 16), nil
	case sai.SerializationUint32:
		return strconv.FormatUint(uint64(v.U32), 16), nil
	case sai.SerializationUint64:
		return strconv.FormatUint(v.U64, 16), nil
	case sai.SerializationInt32:
		return strconv.FormatInt(int64(v.S32), 16), nil
	case sai.SerializationInt64:
		return strconv.FormatInt(v.S64, 16), nil
	case sai.SerializationMAC:
		if v.MAC == nil {
			return "00:00:00:00:00:00", nil
		}
		return v.MAC.String(), nil
	case sai.SerializationIPv4, sai.SerializationIPv6, sai.SerializationIPAddress:
		if v.IP == nil {
			return "", fmt.Errorf("nil IP value")
		}
		return v.IP.String(), nil
	case sai.SerializationIPPrefix:
		return fmt.Sprintf("%s/%s", v.Prefix.Addr.String(), v.Prefix.Mask.String()), nil
	case sai.SerializationCharArray:
		return v.Chars, nil
	case sai.SerializationObjectID:
		return v.OID.String(), nil
	case sai.SerializationObjectList:
		return joinOIDs(v.OIDs), nil
	case sai.SerializationUint32List:
		parts := make([]string, len(v.U32s))
		for i, x := range v.U32s {
			parts[i] = strconv.FormatUint(uint64(x), 16)
		}
		return strings.Join(parts, ","), nil
	case sai.SerializationInt32List:
		parts := make([]string, len(v.S32s))
		for i, x := range v.S32s {
			parts[i] = strconv.FormatInt(int64(x), 16)
		}
		return strings.Join(parts, ","), nil
	case sai.SerializationACLFieldData:
		return serializeACLField(v.ACLField), nil
	case sai.SerializationACLActionData:
		return serializeACLAction(v.ACLAction), nil
	case sai.SerializationPortBreakout:
		return fmt.Sprintf("%d:%s", v.Breakout.Mode, joinOIDs(v.Breakout.PortList)), nil
	case sai.SerializationQosMapList, sai.SerializationTunnelMapList:
		return strings.Join(v.MapList, ","), nil
	default:
		return "", fmt.Errorf("unsupported serialization type %v", v.Type)
	}
}

func deserializeValue(t sai.SerializationType, s string) (sai.Value, error) {
	v := sai.Value{Type: t}
	switch t {
	case sai.SerializationBool:
		v.Bool = s == "true"
	case sai.SerializationUint8:
		x, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return v, err
		}
		v.U8 = uint8(x)
	case sai.SerializationUint16:
		x, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return v, err
		}
		v.U16 = uint16(x)
	case sai.SerializationUint32:
		x, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return v, err
		}
		v.U32 = uint32(x)
	case sai.SerializationUint64:
		x, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return v, err
		}
		v.U64 = x
	case sai.SerializationInt32:
		x, err := strconv.ParseInt(s, 16, 32)
		if err != nil {
			return v, err
		}
		v.S32 = int32(x)
	case sai.SerializationInt64:
		x, err := strconv.ParseInt(s, 16, 64)
		if err != nil {
			return v, err
		}
		v.S64 = x
	case sai.SerializationMAC:
		mac, err := net.ParseMAC(s)
		if err != nil {
			return v, err
		}
		v.MAC = mac
	case sai.SerializationIPv4, sai.SerializationIPv6, sai.SerializationIPAddress:
		ip := net.ParseIP(s)
		if ip == nil {
			return v, fmt.Errorf("invalid IP %q", s)
		}
		v.IP = ip
	case sai.SerializationIPPrefix:
		parts := strings.SplitN(s, "/", 2)
		if len(parts) != 2 {
			return v, fmt.Errorf("invalid IP prefix %q", s)
		}
		addr := net.ParseIP(parts[0])
		mask := net.ParseIP(parts[1])
		if addr == nil || mask == nil {
			return v, fmt.Errorf("invalid IP prefix %q", s)
		}
		v.Prefix = sai.IPPrefix{Addr: addr, Mask: mask}
	case sai.SerializationCharArray:
		v.Chars = s
	case sai.SerializationObjectID:
		oid, err := sai.ParseObjectID(s)
		if err != nil {
			return v, err
		}
		v.OID = oid
	case sai.SerializationObjectList:
		oids, err := splitOIDs(s)
		if err != nil {
			return v, err
		}
		v.OIDs = oids
	case sai.SerializationUint32List:
		if s == "" {
			break
		}
		for _, p := range strings.Split(s, ",") {
			x, err := strconv.ParseUint(p, 16, 32)
			if err != nil {
				return v, err
			}
			v.U32s = append(v.U32s, uint32(x))
		}
	case sai.SerializationInt32List:
		if s == "" {
			break
		}
		for _, p := range strings.Split(s, ",") {
			x, err := strconv.ParseInt(p, 16, 32)
			if err != nil {
				return v, err
			}
			v.S32s = append(v.S32s, int32(x))
		}
	case sai.SerializationACLFieldData:
		f, err := deserializeACLField(s)
		if err != nil {
			return v, err
		}
		v.ACLField = f
	case sai.SerializationACLActionData:
		a, err := deserializeACLAction(s)
		if err != nil {
			return v, err
		}
		v.ACLAction = a
	case sai.SerializationPortBreakout:
		b, err := deserializePortBreakout(s)
		if err != nil {
			return v, err
		}
		v.Breakout = b
	case sai.SerializationQosMapList, sai.SerializationTunnelMapList:
		if s != "" {
			v.MapList = strings.Split(s, ",")
		}
	default:
		return v, fmt.Errorf("unsupported serialization type %v", t)
	}
	return v, nil
}

func joinOIDs(oids []sai.ObjectID) string {
	parts := make([]string, len(oids))
	for i, o := range oids {
		parts[i] = o.String()
	}
	return strings.Join(parts, ",")
}

func splitOIDs(s string) ([]sai.ObjectID, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	oids := make([]sai.ObjectID, len(parts))
	for i, p := range parts {
		o, err := sai.ParseObjectID(p)
		if err != nil {
			return nil, err
		}
		oids[i] = o
	}
	return oids, nil
}

// ACL field/action data are nested composite values; the spec calls their
// textual form "nested a.b.c" — enable.data.mask joined by dots, with
// object lists joined by commas inside the data segment. Port breakout is
// written as "<mode>:<comma-joined port list>" instead.
// ACL field/action object payloads distinguish the single-OID variant from
// the OID-list variant with a leading "d"/"l" tag rather than sniffing for
// a comma, since a one-element list and a single OID would otherwise be
// indistinguishable on the wire.
func serializeACLField(f sai.ACLFieldData) string {
	enable := "0"
	if f.Enable {
		enable = "1"
	}
	if f.List != nil {
		return fmt.Sprintf("%s.l:%s.%x", enable, joinOIDs(f.List), f.Mask)
	}
	return fmt.Sprintf("%s.d:%s.%x", enable, f.Data.String(), f.Mask)
}

func deserializeACLField(s string) (sai.ACLFieldData, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return sai.ACLFieldData{}, fmt.Errorf("invalid acl field data %q", s)
	}
	f := sai.ACLFieldData{Enable: parts[0] == "1"}
	mask, err := strconv.ParseUint(parts[2], 16, 64)
	if err != nil {
		return sai.ACLFieldData{}, err
	}
	f.Mask = mask
	payload := parts[1]
	switch {
	case strings.HasPrefix(payload, "l:"):
		oids, err := splitOIDs(strings.TrimPrefix(payload, "l:"))
		if err != nil {
			return sai.ACLFieldData{}, err
		}
		f.List = oids
	case strings.HasPrefix(payload, "d:"):
		oid, err := sai.ParseObjectID(strings.TrimPrefix(payload, "d:"))
		if err != nil {
			return sai.ACLFieldData{}, err
		}
		f.Data = oid
	default:
		return sai.ACLFieldData{}, fmt.Errorf("invalid acl field data payload %q", payload)
	}
	return f, nil
}

func serializeACLAction(a sai.ACLActionData) string {
	enable := "0"
	if a.Enable {
		enable = "1"
	}
	if a.List != nil {
		return fmt.Sprintf("%s.l:%s", enable, joinOIDs(a.List))
	}
	return fmt.Sprintf("%s.d:%s", enable, a.Param.String())
}

func deserializeACLAction(s string) (sai.ACLActionData, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return sai.ACLActionData{}, fmt.Errorf("invalid acl action data %q", s)
	}
	a := sai.ACLActionData{Enable: parts[0] == "1"}
	payload := parts[1]
	switch {
	case strings.HasPrefix(payload, "l:"):
		oids, err := splitOIDs(strings.TrimPrefix(payload, "l:"))
		if err != nil {
			return sai.ACLActionData{}, err
		}
		a.List = oids
	case strings.HasPrefix(payload, "d:"):
		oid, err := sai.ParseObjectID(strings.TrimPrefix(payload, "d:"))
		if err != nil {
			return sai.ACLActionData{}, err
		}
		a.Param = oid
	default:
		return sai.ACLActionData{}, fmt.Errorf("invalid acl action data payload %q", payload)
	}
	return a, nil
}

func deserializePortBreakout(s string) (sai.PortBreakout, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return sai.PortBreakout{}, fmt.Errorf("invalid port breakout %q", s)
	}
	mode, err := strconv.Atoi(parts[0])
	if err != nil {
		return sai.PortBreakout{}, err
	}
	oids, err := splitOIDs(parts[1])
	if err != nil {
		return sai.PortBreakout{}, err
	}
	return sai.PortBreakout{Mode: sai.PortBreakoutMode(mode), PortList: oids}, nil
}

// SerializeCountsOnly produces a field list carrying only the `count`
// suffix fields for list-typed attributes, used on the BUFFER_OVERFLOW
// path where list contents are undefined but counts must still be
// trustworthy (spec section 4.2).
func SerializeCountsOnly(kind sai.ObjectType, attrs []sai.Attribute) ([]Field, error) {
	fields := make([]Field, 0, len(attrs))
	for _, a := range attrs {
		name, err := NameOf(kind, a.ID)
		if err != nil {
			return nil, err
		}
		count := listLen(a.Value)
		fields = append(fields, Field{Name: name + "#count", Value: strconv.Itoa(count)})
	}
	return fields, nil
}

// DeserializeCounts is the inverse of SerializeCountsOnly: it maps each
// "name#count" field back to the attribute id it names and the reported
// count, for a caller on the BUFFER_OVERFLOW path to resize its buffers
// against before retrying.
func DeserializeCounts(kind sai.ObjectType, fields []Field) (map[sai.AttrID]int, error) {
	counts := make(map[sai.AttrID]int, len(fields))
	for _, f := range fields {
		name, ok := strings.CutSuffix(f.Name, "#count")
		if !ok {
			return nil, fmt.Errorf("field %q is not a count field", f.Name)
		}
		id, _, err := IDByName(kind, name)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(f.Value)
		if err != nil {
			return nil, fmt.Errorf("parse count for %q: %w", f.Name, err)
		}
		counts[id] = n
	}
	return counts, nil
}

// resizeToCount returns a copy of v with its list contents replaced by a
// zero-valued slice of length n, preserving v's serialization type. Used to
// report the required buffer length on the BUFFER_OVERFLOW path without
// fabricating list contents the vendor SDK never returned.
func resizeToCount(v sai.Value, n int) sai.Value {
	switch v.Type {
	case sai.SerializationObjectList:
		v.OIDs = make([]sai.ObjectID, n)
	case sai.SerializationUint32List:
		v.U32s = make([]uint32, n)
	case sai.SerializationInt32List:
		v.S32s = make([]int32, n)
	case sai.SerializationQosMapList, sai.SerializationTunnelMapList:
		v.MapList = make([]string, n)
	}
	return v
}

// ResizeToCounts returns a copy of want with every list-typed attribute's
// Value resized to the length counts reports for it, leaving non-list and
// unreported attributes untouched. The caller uses the resulting count to
// reallocate and retry, per the BUFFER_OVERFLOW contract.
func ResizeToCounts(want []sai.Attribute, counts map[sai.AttrID]int) []sai.Attribute {
	out := make([]sai.Attribute, len(want))
	for i, a := range want {
		if n, ok := counts[a.ID]; ok {
			a.Value = resizeToCount(a.Value, n)
		}
		out[i] = a
	}
	return out
}

func listLen(v sai.Value) int {
	switch v.Type {
	case sai.SerializationObjectList:
		return len(v.OIDs)
	case sai.SerializationUint32List:
		return len(v.U32s)
	case sai.SerializationInt32List:
		return len(v.S32s)
	case sai.SerializationQosMapList, sai.SerializationTunnelMapList:
		return len(v.MapList)
	default:
		return 0
	}
}
