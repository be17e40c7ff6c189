// Package translation implements the ID Translation Store (C3): the VID
// counter and the two mutually-inverse VID<->RID hashes that make the
// library side and the daemon side consistent across restarts. It is a
// thin, typed layer over bus.Store, grounded on the same namespaced-store
// shape the teacher uses in pkg/opdb, specialized here to the two fixed
// hashes and the one counter spec section 6 names.
package translation

import (
	"context"
	"fmt"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
)

// Store is the ID translation store. All methods are safe for concurrent
// use only to the extent the underlying bus.Store is; the daemon-side
// dispatcher is single-threaded and never needs external locking here
// (spec section 8), so Store adds none.
type Store struct {
	backing bus.Store
}

func New(backing bus.Store) *Store {
	return &Store{backing: backing}
}

// NextVID draws a fresh monotonic counter value from the shared store and
// packs it with kind into a new VID. The counter is the sole process-wide
// increasing resource (spec section 5) and must survive a daemon restart,
// which is why it lives in the backing Store rather than in memory.
func (s *Store) NextVID(ctx context.Context, kind sai.ObjectType) (sai.ObjectID, error) {
	counter, err := s.backing.Incr(ctx, bus.KeyVIDCounter)
	if err != nil {
		return 0, fmt.Errorf("allocate vid counter: %w", err)
	}
	return sai.PackVID(kind, counter), nil
}

// Bind records a VID<->RID pair in both hashes, establishing the mutual
// -inverse invariant for this pair (spec section 7: "VIDTORID[vid] == rid
// && RIDTOVID[rid] == vid"). Called on daemon-side create success and on
// lazy discovery of a previously unseen RID.
func (s *Store) Bind(ctx context.Context, vid sai.ObjectID, rid sai.RealID) error {
	if err := s.backing.HSet(ctx, bus.HashVIDToRID, vid.String(), rid.String()); err != nil {
		return fmt.Errorf("bind vid->rid: %w", err)
	}
	if err := s.backing.HSet(ctx, bus.HashRIDToVID, rid.String(), vid.String()); err != nil {
		return fmt.Errorf("bind rid->vid: %w", err)
	}
	return nil
}

// Unbind removes a VID<->RID pair from both hashes. Called on daemon-side
// remove success.
func (s *Store) Unbind(ctx context.Context, vid sai.ObjectID, rid sai.RealID) error {
	if err := s.backing.HDel(ctx, bus.HashVIDToRID, vid.String()); err != nil {
		return fmt.Errorf("unbind vid->rid: %w", err)
	}
	if err := s.backing.HDel(ctx, bus.HashRIDToVID, rid.String()); err != nil {
		return fmt.Errorf("unbind rid->vid: %w", err)
	}
	return nil
}

// RIDOf translates a VID to its bound RID. A miss is fatal to the daemon
// per spec section 7 ("VID->RID for a never-seen VID is fatal"); this
// method only reports the miss via ok=false, the fatal-exit decision is
// the dispatcher's (pkg/syncd), not the store's, so the store stays
// testable in isolation.
func (s *Store) RIDOf(ctx context.Context, vid sai.ObjectID) (sai.RealID, bool, error) {
	v, ok, err := s.backing.HGet(ctx, bus.HashVIDToRID, vid.String())
	if err != nil || !ok {
		return 0, ok, err
	}
	rid, err := sai.ParseRealID(v)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt vid->rid binding for %s: %w", vid, err)
	}
	return rid, true, nil
}

// VIDOf translates a RID to its bound VID, if one exists. Unlike RIDOf, a
// miss here is not fatal by itself: callers performing daemon-side
// discovery (spec section 7: "RID->VID for a never-seen RID allocates a
// fresh VID... and continues") use ok=false as the trigger to call
// NextVID and Bind.
func (s *Store) VIDOf(ctx context.Context, rid sai.RealID) (sai.ObjectID, bool, error) {
	v, ok, err := s.backing.HGet(ctx, bus.HashRIDToVID, rid.String())
	if err != nil || !ok {
		return 0, ok, err
	}
	vid, err := sai.ParseObjectID(v)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt rid->vid binding for %s: %w", rid, err)
	}
	return vid, true, nil
}

// Size reports how many VID<->RID bindings are currently recorded, used
// by the gRPC introspection side channel (api/saipb) to report
// translation-store size without exposing the backing store itself.
func (s *Store) Size(ctx context.Context) (int, error) {
	n, err := s.backing.HLen(ctx, bus.HashVIDToRID)
	if err != nil {
		return 0, fmt.Errorf("translation store size: %w", err)
	}
	return n, nil
}

// Discover implements the lazy-RID-discovery path: if rid is already
// bound, its existing VID is returned unchanged (a second discovery of
// the same RID must be idempotent, spec section 5: "Second discovery
// must produce identical bindings"). Otherwise a fresh VID of kind is
// drawn and bound, and fresh is true.
func (s *Store) Discover(ctx context.Context, rid sai.RealID, kind sai.ObjectType) (vid sai.ObjectID, fresh bool, err error) {
	existing, ok, err := s.VIDOf(ctx, rid)
	if err != nil {
		return 0, false, err
	}
	if ok {
		if existing.TypeOf() != kind {
			return 0, false, fmt.Errorf("rid %s rediscovered with kind %s, previously bound as %s", rid, kind, existing.TypeOf())
		}
		return existing, false, nil
	}

	vid, err = s.NextVID(ctx, kind)
	if err != nil {
		return 0, false, err
	}
	if err := s.Bind(ctx, vid, rid); err != nil {
		return 0, false, err
	}
	return vid, true, nil
}
