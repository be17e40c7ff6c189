package attr

import "github.com/opencompute/go-sairedis/pkg/sai"

// AttrID is an alias, not a new type: attribute ids are scoped per object
// kind, and callers always pair one with a sai.ObjectType, so there is no
// value in making attr.AttrID distinct from sai.AttrID.
type AttrID = sai.AttrID

// Attribute ids, scoped per object kind exactly as SAI attribute ids are:
// the same numeric value means something different for a port than for a
// next-hop. Only the attributes this adapter actually validates, settles,
// or gets are enumerated — the set the spec calls out plus the handful the
// codec round-trip tests exercise. Vendor/test code registers additional
// rows directly via Register for kinds this repo does not otherwise touch.

// Switch attributes.
const (
	SwitchAttrCPUPort AttrID = iota + 1
	SwitchAttrDefaultVirtualRouterID
	SwitchAttrPortList
	SwitchAttrDefaultVlanID
	SwitchAttrDefaultTrapGroup
	SwitchAttrInitSwitch
)

// Port attributes.
const (
	PortAttrSpeed AttrID = iota + 1
	PortAttrHwLaneList
	PortAttrAdminState
	PortAttrOperStatus
)

// VirtualRouter attributes.
const (
	VirtualRouterAttrAdminV4State AttrID = iota + 1
	VirtualRouterAttrAdminV6State
	VirtualRouterAttrSrcMac
)

// RouterInterface attributes.
const (
	RouterInterfaceAttrVirtualRouterID AttrID = iota + 1
	RouterInterfaceAttrType
	RouterInterfaceAttrPortID
	RouterInterfaceAttrVlanID
	RouterInterfaceAttrSrcMac
	RouterInterfaceAttrMTU
)

// RouterInterfaceType values (carried in the Value.S32 field of the TYPE
// attribute).
const (
	RouterInterfaceTypePort int32 = iota
	RouterInterfaceTypeVlan
	RouterInterfaceTypeLoopback
)

// NextHop attributes.
const (
	NextHopAttrType AttrID = iota + 1
	NextHopAttrRouterInterfaceID
	NextHopAttrIP
	NextHopAttrTunnelID
)

// NextHop TYPE values.
const (
	NextHopTypeIP int32 = iota
	NextHopTypeTunnelEncap
)

// NextHopGroup attributes.
const (
	NextHopGroupAttrType AttrID = iota + 1
	NextHopGroupAttrNextHopList
)

// NextHopGroup TYPE values.
const (
	NextHopGroupTypeECMP int32 = iota
)

// RouteEntry settable attributes.
const (
	RouteEntryAttrTrapPriority AttrID = iota + 1
	RouteEntryAttrMetaData
	RouteEntryAttrNextHopID
	RouteEntryAttrPacketAction
)

// NeighborEntry settable attributes.
const (
	NeighborEntryAttrDstMacAddress AttrID = iota + 1
	NeighborEntryAttrPacketAction
	NeighborEntryAttrNoHostRoute
	NeighborEntryAttrMetaData
)

// FDBEntry attributes.
const (
	FDBEntryAttrType AttrID = iota + 1
	FDBEntryAttrPortID
	FDBEntryAttrPacketAction
)

// Vlan attributes.
const (
	VlanAttrMemberList AttrID = iota + 1
)

// VlanMember attributes.
const (
	VlanMemberAttrVlanID AttrID = iota + 1
	VlanMemberAttrPortID
	VlanMemberAttrTaggingMode
)

// LAG attributes (none settable in this repo; LAG takes no mandatory
// creation attributes beyond an empty attribute list).

// LAGMember attributes.
const (
	LAGMemberAttrLagID AttrID = iota + 1
	LAGMemberAttrPortID
)

// Policer attributes.
const (
	PolicerAttrMeterType AttrID = iota + 1
	PolicerAttrMode
	PolicerAttrCIR
	PolicerAttrCBS
	PolicerAttrPIR
	PolicerAttrPBS
)

// Policer METER_TYPE values.
const (
	PolicerMeterTypePackets int32 = iota
	PolicerMeterTypeBytes
)

// Policer MODE values.
const (
	PolicerModeSrTCM int32 = iota
	PolicerModeTrTCM
	PolicerModeStorm
)

// TrapGroup attributes.
const (
	TrapGroupAttrPolicer AttrID = iota + 1
	TrapGroupAttrQueue
)

// HostInterface attributes.
const (
	HostInterfaceAttrType AttrID = iota + 1
	HostInterfaceAttrRifOrPortID
	HostInterfaceAttrName
)

// HostInterface TYPE values.
const (
	HostInterfaceTypeNetdev int32 = iota
	HostInterfaceTypeFD
	HostInterfaceTypeGenetlink
)

// Tunnel attributes.
const (
	TunnelAttrType AttrID = iota + 1
	TunnelAttrUnderlayInterface
	TunnelAttrOverlayInterface
)

// TunnelMap attributes.
const (
	TunnelMapAttrType AttrID = iota + 1
	TunnelMapAttrEntries
)

func init() {
	reg := Register

	reg(sai.ObjectTypeSwitch, SwitchAttrCPUPort, "SAI_SWITCH_ATTR_CPU_PORT", sai.SerializationObjectID)
	reg(sai.ObjectTypeSwitch, SwitchAttrDefaultVirtualRouterID, "SAI_SWITCH_ATTR_DEFAULT_VIRTUAL_ROUTER_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeSwitch, SwitchAttrPortList, "SAI_SWITCH_ATTR_PORT_LIST", sai.SerializationObjectList)
	reg(sai.ObjectTypeSwitch, SwitchAttrDefaultVlanID, "SAI_SWITCH_ATTR_DEFAULT_VLAN_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeSwitch, SwitchAttrDefaultTrapGroup, "SAI_SWITCH_ATTR_DEFAULT_TRAP_GROUP", sai.SerializationObjectID)
	reg(sai.ObjectTypeSwitch, SwitchAttrInitSwitch, "SAI_SWITCH_ATTR_INIT_SWITCH", sai.SerializationBool)

	reg(sai.ObjectTypePort, PortAttrSpeed, "SAI_PORT_ATTR_SPEED", sai.SerializationUint32)
	reg(sai.ObjectTypePort, PortAttrHwLaneList, "SAI_PORT_ATTR_HW_LANE_LIST", sai.SerializationUint32List)
	reg(sai.ObjectTypePort, PortAttrAdminState, "SAI_PORT_ATTR_ADMIN_STATE", sai.SerializationBool)
	reg(sai.ObjectTypePort, PortAttrOperStatus, "SAI_PORT_ATTR_OPER_STATUS", sai.SerializationUint32)

	reg(sai.ObjectTypeVirtualRouter, VirtualRouterAttrAdminV4State, "SAI_VIRTUAL_ROUTER_ATTR_ADMIN_V4_STATE", sai.SerializationBool)
	reg(sai.ObjectTypeVirtualRouter, VirtualRouterAttrAdminV6State, "SAI_VIRTUAL_ROUTER_ATTR_ADMIN_V6_STATE", sai.SerializationBool)
	reg(sai.ObjectTypeVirtualRouter, VirtualRouterAttrSrcMac, "SAI_VIRTUAL_ROUTER_ATTR_SRC_MAC_ADDRESS", sai.SerializationMAC)

	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrVirtualRouterID, "SAI_ROUTER_INTERFACE_ATTR_VIRTUAL_ROUTER_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrType, "SAI_ROUTER_INTERFACE_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrPortID, "SAI_ROUTER_INTERFACE_ATTR_PORT_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrVlanID, "SAI_ROUTER_INTERFACE_ATTR_VLAN_ID", sai.SerializationUint16)
	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrSrcMac, "SAI_ROUTER_INTERFACE_ATTR_SRC_MAC_ADDRESS", sai.SerializationMAC)
	reg(sai.ObjectTypeRouterInterface, RouterInterfaceAttrMTU, "SAI_ROUTER_INTERFACE_ATTR_MTU", sai.SerializationUint32)

	reg(sai.ObjectTypeNextHop, NextHopAttrType, "SAI_NEXT_HOP_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeNextHop, NextHopAttrRouterInterfaceID, "SAI_NEXT_HOP_ATTR_ROUTER_INTERFACE_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeNextHop, NextHopAttrIP, "SAI_NEXT_HOP_ATTR_IP", sai.SerializationIPAddress)
	reg(sai.ObjectTypeNextHop, NextHopAttrTunnelID, "SAI_NEXT_HOP_ATTR_TUNNEL_ID", sai.SerializationObjectID)

	reg(sai.ObjectTypeNextHopGroup, NextHopGroupAttrType, "SAI_NEXT_HOP_GROUP_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeNextHopGroup, NextHopGroupAttrNextHopList, "SAI_NEXT_HOP_GROUP_ATTR_NEXT_HOP_LIST", sai.SerializationObjectList)

	reg(sai.ObjectTypeRouteEntry, RouteEntryAttrTrapPriority, "SAI_ROUTE_ENTRY_ATTR_TRAP_PRIORITY", sai.SerializationUint8)
	reg(sai.ObjectTypeRouteEntry, RouteEntryAttrMetaData, "SAI_ROUTE_ENTRY_ATTR_META_DATA", sai.SerializationUint32)
	reg(sai.ObjectTypeRouteEntry, RouteEntryAttrNextHopID, "SAI_ROUTE_ENTRY_ATTR_NEXT_HOP_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeRouteEntry, RouteEntryAttrPacketAction, "SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION", sai.SerializationInt32)

	reg(sai.ObjectTypeNeighborEntry, NeighborEntryAttrDstMacAddress, "SAI_NEIGHBOR_ENTRY_ATTR_DST_MAC_ADDRESS", sai.SerializationMAC)
	reg(sai.ObjectTypeNeighborEntry, NeighborEntryAttrPacketAction, "SAI_NEIGHBOR_ENTRY_ATTR_PACKET_ACTION", sai.SerializationInt32)
	reg(sai.ObjectTypeNeighborEntry, NeighborEntryAttrNoHostRoute, "SAI_NEIGHBOR_ENTRY_ATTR_NO_HOST_ROUTE", sai.SerializationBool)
	reg(sai.ObjectTypeNeighborEntry, NeighborEntryAttrMetaData, "SAI_NEIGHBOR_ENTRY_ATTR_META_DATA", sai.SerializationUint32)

	reg(sai.ObjectTypeFDBEntry, FDBEntryAttrType, "SAI_FDB_ENTRY_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeFDBEntry, FDBEntryAttrPortID, "SAI_FDB_ENTRY_ATTR_PORT_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeFDBEntry, FDBEntryAttrPacketAction, "SAI_FDB_ENTRY_ATTR_PACKET_ACTION", sai.SerializationInt32)

	reg(sai.ObjectTypeVlan, VlanAttrMemberList, "SAI_VLAN_ATTR_MEMBER_LIST", sai.SerializationObjectList)

	reg(sai.ObjectTypeVlanMember, VlanMemberAttrVlanID, "SAI_VLAN_MEMBER_ATTR_VLAN_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeVlanMember, VlanMemberAttrPortID, "SAI_VLAN_MEMBER_ATTR_PORT_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeVlanMember, VlanMemberAttrTaggingMode, "SAI_VLAN_MEMBER_ATTR_TAGGING_MODE", sai.SerializationInt32)

	reg(sai.ObjectTypeLAGMember, LAGMemberAttrLagID, "SAI_LAG_MEMBER_ATTR_LAG_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeLAGMember, LAGMemberAttrPortID, "SAI_LAG_MEMBER_ATTR_PORT_ID", sai.SerializationObjectID)

	reg(sai.ObjectTypePolicer, PolicerAttrMeterType, "SAI_POLICER_ATTR_METER_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypePolicer, PolicerAttrMode, "SAI_POLICER_ATTR_MODE", sai.SerializationInt32)
	reg(sai.ObjectTypePolicer, PolicerAttrCIR, "SAI_POLICER_ATTR_CIR", sai.SerializationUint64)
	reg(sai.ObjectTypePolicer, PolicerAttrCBS, "SAI_POLICER_ATTR_CBS", sai.SerializationUint64)
	reg(sai.ObjectTypePolicer, PolicerAttrPIR, "SAI_POLICER_ATTR_PIR", sai.SerializationUint64)
	reg(sai.ObjectTypePolicer, PolicerAttrPBS, "SAI_POLICER_ATTR_PBS", sai.SerializationUint64)

	reg(sai.ObjectTypeTrapGroup, TrapGroupAttrPolicer, "SAI_HOSTIF_TRAP_GROUP_ATTR_POLICER", sai.SerializationObjectID)
	reg(sai.ObjectTypeTrapGroup, TrapGroupAttrQueue, "SAI_HOSTIF_TRAP_GROUP_ATTR_QUEUE", sai.SerializationUint32)

	reg(sai.ObjectTypeHostInterface, HostInterfaceAttrType, "SAI_HOSTIF_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeHostInterface, HostInterfaceAttrRifOrPortID, "SAI_HOSTIF_ATTR_RIF_OR_PORT_ID", sai.SerializationObjectID)
	reg(sai.ObjectTypeHostInterface, HostInterfaceAttrName, "SAI_HOSTIF_ATTR_NAME", sai.SerializationCharArray)

	reg(sai.ObjectTypeTunnel, TunnelAttrType, "SAI_TUNNEL_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeTunnel, TunnelAttrUnderlayInterface, "SAI_TUNNEL_ATTR_UNDERLAY_INTERFACE", sai.SerializationObjectID)
	reg(sai.ObjectTypeTunnel, TunnelAttrOverlayInterface, "SAI_TUNNEL_ATTR_OVERLAY_INTERFACE", sai.SerializationObjectID)

	reg(sai.ObjectTypeTunnelMap, TunnelMapAttrType, "SAI_TUNNEL_MAP_ATTR_TYPE", sai.SerializationInt32)
	reg(sai.ObjectTypeTunnelMap, TunnelMapAttrEntries, "SAI_TUNNEL_MAP_ATTR_ENTRIES", sai.SerializationTunnelMapList)
}
