// Package sai defines the wire-level vocabulary shared by the library-side
// adapter and the daemon-side dispatcher: object kinds, the VID/RID address
// spaces, entry keys, attributes and status codes. Neither side of the bus
// imports the other's package; both import this one.
package sai

import "fmt"

// ObjectType is the closed enumeration of object kinds the adapter knows
// about. The numeric values are part of the wire format: they are packed
// into the high bits of every VID (see PackVID) and must never be
// renumbered once assigned.
type ObjectType uint16

const (
	ObjectTypeNull ObjectType = iota
	ObjectTypeSwitch
	ObjectTypePort
	ObjectTypeVirtualRouter
	ObjectTypeRouterInterface
	ObjectTypeNextHop
	ObjectTypeNextHopGroup
	ObjectTypeRouteEntry
	ObjectTypeNeighborEntry
	ObjectTypeFDBEntry
	ObjectTypeVlan
	ObjectTypeVlanMember
	ObjectTypeLAG
	ObjectTypeLAGMember
	ObjectTypePolicer
	ObjectTypeTrapGroup
	ObjectTypeTrap
	ObjectTypeUserDefinedTrap
	ObjectTypeHostInterface
	ObjectTypeTunnelMap
	ObjectTypeTunnel
	ObjectTypeTunnelTermTableEntry

	// SDK-only kinds: the attribute codec must know their metadata even
	// though the library-side adapter exposes no create/remove/set/get
	// entry points for them in this repo.
	ObjectTypeQosMap
	ObjectTypeACLTable
	ObjectTypeACLEntry
	ObjectTypeBuffer
	ObjectTypeScheduler
	ObjectTypeWred
	ObjectTypeMirror
	ObjectTypeUDF
	ObjectTypeQueue
	ObjectTypeSchedulerGroup
	ObjectTypeSamplePacket
	ObjectTypeSTP
	ObjectTypeHash
	ObjectTypeHostif

	objectTypeCount
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeNull:                "null",
	ObjectTypeSwitch:              "switch",
	ObjectTypePort:                "port",
	ObjectTypeVirtualRouter:       "virtual-router",
	ObjectTypeRouterInterface:     "router-interface",
	ObjectTypeNextHop:             "next-hop",
	ObjectTypeNextHopGroup:        "next-hop-group",
	ObjectTypeRouteEntry:          "route-entry",
	ObjectTypeNeighborEntry:       "neighbor-entry",
	ObjectTypeFDBEntry:            "fdb-entry",
	ObjectTypeVlan:                "vlan",
	ObjectTypeVlanMember:          "vlan-member",
	ObjectTypeLAG:                 "lag",
	ObjectTypeLAGMember:           "lag-member",
	ObjectTypePolicer:             "policer",
	ObjectTypeTrapGroup:           "trap-group",
	ObjectTypeTrap:                "trap",
	ObjectTypeUserDefinedTrap:     "user-defined-trap",
	ObjectTypeHostInterface:       "host-interface",
	ObjectTypeTunnelMap:           "tunnel-map",
	ObjectTypeTunnel:              "tunnel",
	ObjectTypeTunnelTermTableEntry: "tunnel-term-table-entry",
	ObjectTypeQosMap:              "qos-map",
	ObjectTypeACLTable:            "acl-table",
	ObjectTypeACLEntry:            "acl-entry",
	ObjectTypeBuffer:              "buffer",
	ObjectTypeScheduler:           "scheduler",
	ObjectTypeWred:                "wred",
	ObjectTypeMirror:              "mirror",
	ObjectTypeUDF:                 "udf",
	ObjectTypeQueue:               "queue",
	ObjectTypeSchedulerGroup:      "scheduler-group",
	ObjectTypeSamplePacket:        "samplepacket",
	ObjectTypeSTP:                 "stp",
	ObjectTypeHash:                "hash",
	ObjectTypeHostif:              "hostif",
}

var objectTypeByName = func() map[string]ObjectType {
	m := make(map[string]ObjectType, len(objectTypeNames))
	for t, n := range objectTypeNames {
		m[n] = t
	}
	return m
}()

func (t ObjectType) String() string {
	if n, ok := objectTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("object-type(%d)", uint16(t))
}

// ParseObjectType maps a canonical kind name (as used in bus keys,
// "<kind>:<object-ref>") back to its ObjectType.
func ParseObjectType(name string) (ObjectType, bool) {
	t, ok := objectTypeByName[name]
	return t, ok
}

// IsEntryKeyed reports whether objects of this kind are identified by a
// structural key (route, neighbor, FDB) instead of a VID.
func (t ObjectType) IsEntryKeyed() bool {
	switch t {
	case ObjectTypeRouteEntry, ObjectTypeNeighborEntry, ObjectTypeFDBEntry:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a known, non-null object kind.
func (t ObjectType) Valid() bool {
	_, ok := objectTypeNames[t]
	return ok && t != ObjectTypeNull
}
