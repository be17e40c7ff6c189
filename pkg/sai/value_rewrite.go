package sai

// RewriteObjectRefs walks every object-reference slot in v (a plain OID, an
// OID list, or the nested OID slots inside ACL field/action data and port
// breakout) and replaces each with the result of fn. Shared by the
// library-side notification worker (RID->VID, looked up in the shared
// translation store) and the daemon-side dispatcher (VID->RID on inbound,
// RID->VID on outbound get results) so the recursion over these five
// variants is written exactly once (spec section 4.3 step 3 and step 7 list
// the same five variants for both directions).
func (v Value) RewriteObjectRefs(fn func(ObjectID) (ObjectID, error)) (Value, error) {
	out := v
	switch v.Type {
	case SerializationObjectID:
		nv, err := fn(v.OID)
		if err != nil {
			return Value{}, err
		}
		out.OID = nv

	case SerializationObjectList:
		ids := make([]ObjectID, len(v.OIDs))
		for i, id := range v.OIDs {
			nv, err := fn(id)
			if err != nil {
				return Value{}, err
			}
			ids[i] = nv
		}
		out.OIDs = ids

	case SerializationACLFieldData:
		f := v.ACLField
		if !f.Data.IsNull() {
			nv, err := fn(f.Data)
			if err != nil {
				return Value{}, err
			}
			f.Data = nv
		}
		if len(f.List) > 0 {
			list := make([]ObjectID, len(f.List))
			for i, id := range f.List {
				nv, err := fn(id)
				if err != nil {
					return Value{}, err
				}
				list[i] = nv
			}
			f.List = list
		}
		out.ACLField = f

	case SerializationACLActionData:
		a := v.ACLAction
		if !a.Param.IsNull() {
			nv, err := fn(a.Param)
			if err != nil {
				return Value{}, err
			}
			a.Param = nv
		}
		if len(a.List) > 0 {
			list := make([]ObjectID, len(a.List))
			for i, id := range a.List {
				nv, err := fn(id)
				if err != nil {
					return Value{}, err
				}
				list[i] = nv
			}
			a.List = list
		}
		out.ACLAction = a

	case SerializationPortBreakout:
		b := v.Breakout
		if len(b.PortList) > 0 {
			list := make([]ObjectID, len(b.PortList))
			for i, id := range b.PortList {
				nv, err := fn(id)
				if err != nil {
					return Value{}, err
				}
				list[i] = nv
			}
			b.PortList = list
		}
		out.Breakout = b
	}
	return out, nil
}
