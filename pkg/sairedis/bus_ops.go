package sairedis

import (
	"context"
	"fmt"
	"time"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// getTimeout bounds the library's synchronous get and view-transition
// waits (spec section 4.4: "blocks up to 60 seconds... Timeout returns
// FAILURE").
const getTimeout = 60 * time.Second

// objectRef renders id as the "<kind-name>:<object-ref>" bus key spec
// section 6 describes.
func objectRef(kind sai.ObjectType, id sai.ObjectID) string {
	return fmt.Sprintf("%s:%s", kind, id)
}

func entryRef(kind sai.ObjectType, key string) string {
	return fmt.Sprintf("%s:%s", kind, key)
}

// pushMutation serializes attrs and enqueues a create/remove/set message
// on the asic-state queue. remove and generic-attr-less ops pass a nil
// attrs slice.
func (s *LibraryState) pushMutation(ctx context.Context, kind sai.ObjectType, key string, op bus.Op, attrs []sai.Attribute) error {
	fields, err := attr.Serialize(kind, attrs)
	if err != nil {
		return fmt.Errorf("serialize %s attributes: %w", kind, err)
	}
	return s.Bus.PushAsicState(ctx, bus.Message{Key: key, Op: op, Fields: fields})
}

// syncGet places a get request on the get-request queue and blocks for a
// matching response, exactly as spec section 4.2 describes: the adapter
// blocks the caller until the matching response arrives, with no request
// id to correlate on (spec section 5 — this is why outstanding gets must
// be serialized under the API lock). Every requested id must be in kind's
// gettable whitelist first — here, any id the metadata table registers for
// kind, since nothing in this codec distinguishes a write-only attribute
// from a readable one.
func (s *LibraryState) syncGet(ctx context.Context, kind sai.ObjectType, key string, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	for _, a := range want {
		if _, err := attr.NameOf(kind, a.ID); err != nil {
			return nil, sai.StatusInvalidParameter, nil
		}
	}

	fields, err := attr.Serialize(kind, want)
	if err != nil {
		return nil, sai.StatusFailure, fmt.Errorf("serialize %s get request: %w", kind, err)
	}
	if err := s.Bus.PushGetRequest(ctx, bus.Message{Key: key, Op: bus.OpGet, Fields: fields}); err != nil {
		return nil, sai.StatusFailure, err
	}

	result, _, value := bus.Select([]any{s.Bus.Response.C()}, s.Bus.Shutdown, getTimeout)
	switch result {
	case bus.SelectShutdown:
		return nil, sai.StatusFailure, fmt.Errorf("get %s: bus shut down", key)
	case bus.SelectTimeout:
		return nil, sai.StatusFailure, nil
	}

	resp := value.(bus.Response)
	status := sai.ParseStatus(resp.Status)
	if status == sai.StatusBufferOverflow {
		counts, err := attr.DeserializeCounts(kind, resp.Fields)
		if err != nil {
			return nil, sai.StatusFailure, fmt.Errorf("deserialize %s overflow counts: %w", kind, err)
		}
		return attr.ResizeToCounts(want, counts), status, nil
	}
	if !status.OK() {
		return nil, status, nil
	}
	attrs, err := attr.Deserialize(kind, resp.Fields)
	if err != nil {
		return nil, sai.StatusFailure, fmt.Errorf("deserialize %s get response: %w", kind, err)
	}
	return attrs, status, nil
}
