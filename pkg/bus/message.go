// Package bus implements the transport abstraction (C1): an ordered
// request queue, a paired get-request/get-response queue, a notification
// queue, and a persistent key/hash store, shared by the library-side
// adapter and the daemon-side dispatcher. Modeled on the teacher's
// pkg/events/local (channel-fed pub/sub) for the queue surfaces and
// pkg/opdb (namespaced key/value Store) for the persistent surface.
package bus

import "github.com/opencompute/go-sairedis/pkg/sai/attr"

// Op is one of the mutation/query operations carried on the asic-state
// queue (create/remove/set) or the get-request queue (get).
type Op string

const (
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpSet    Op = "set"
	OpGet    Op = "get"
	OpDelGet Op = "delget"
)

// Message is one entry on the asic-state or get-request queue: a key of
// the form "<kind-name>:<object-ref>", an operation, and a field list
// carrying the serialized attribute list (empty for remove; for a get, the
// requested attributes).
type Message struct {
	Key    string
	Op     Op
	Fields []attr.Field
}

// Response is one entry on the get-response queue: a serialized status
// code as the key, and a field list (attribute values, or just counts on
// overflow, or empty on any other non-success status).
type Response struct {
	Status string
	Fields []attr.Field
}

// Notification is one entry on the notification queue: an event name, an
// event-kind-specific data string, and an additional structured field
// list.
type Notification struct {
	ID     string
	Op     string
	Data   string
	Fields []attr.Field
}

// Notification event names (spec section 6).
const (
	EventSwitchStateChange     = "switch_state_change"
	EventPortStateChange       = "port_state_change"
	EventFDB                   = "fdb_event"
	EventSwitchShutdownRequest = "switch_shutdown_request"
	EventPacket                = "packet_event"
	EventQueuePFCDeadlock      = "queue_pfc_deadlock"
)
