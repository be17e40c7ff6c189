package syncd

import (
	"context"
	"fmt"

	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/sai"
)

// translationMiss distinguishes a never-seen VID (fatal, per spec section
// 4.3) from any other error rewriteVIDToRID might return, so callers can
// route it to Fatal without string-matching an error message.
type translationMiss struct {
	vid sai.ObjectID
}

func (e *translationMiss) Error() string {
	return fmt.Sprintf("no rid bound for vid %s", e.vid)
}

// rewriteVIDToRID walks every object-valued attribute in attrs and
// replaces each VID with its bound RID (spec section 4.3 step 3). A miss
// is reported as *translationMiss; the dispatcher treats that as fatal.
func rewriteVIDToRID(ctx context.Context, trans *translation.Store, attrs []sai.Attribute) ([]sai.Attribute, error) {
	out := make([]sai.Attribute, len(attrs))
	for i, a := range attrs {
		nv, err := a.Value.RewriteObjectRefs(func(vid sai.ObjectID) (sai.ObjectID, error) {
			if vid.IsNull() {
				return vid, nil
			}
			rid, ok, err := trans.RIDOf(ctx, vid)
			if err != nil {
				return 0, err
			}
			if !ok {
				return 0, &translationMiss{vid: vid}
			}
			return sai.ObjectID(rid), nil
		})
		if err != nil {
			return nil, err
		}
		out[i] = sai.Attribute{ID: a.ID, Value: nv}
	}
	return out, nil
}

// rewriteRIDToVID is the inverse, used on outbound get results and
// notifications: a never-seen RID allocates a fresh VID via Discover
// (kind supplied by the SDK's type query) and the loop continues (spec
// section 4.3: "RID->VID for a never-seen RID... continues").
func rewriteRIDToVID(ctx context.Context, trans *translation.Store, typeOf func(context.Context, sai.RealID) (sai.ObjectType, error), attrs []sai.Attribute) ([]sai.Attribute, error) {
	out := make([]sai.Attribute, len(attrs))
	for i, a := range attrs {
		nv, err := a.Value.RewriteObjectRefs(func(ridAsVID sai.ObjectID) (sai.ObjectID, error) {
			if ridAsVID.IsNull() {
				return ridAsVID, nil
			}
			rid := sai.RealID(ridAsVID)
			kind, err := typeOf(ctx, rid)
			if err != nil {
				return 0, err
			}
			vid, _, err := trans.Discover(ctx, rid, kind)
			if err != nil {
				return 0, err
			}
			return vid, nil
		})
		if err != nil {
			return nil, err
		}
		out[i] = sai.Attribute{ID: a.ID, Value: nv}
	}
	return out, nil
}
