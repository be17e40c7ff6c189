package sairedis

import (
	"context"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/sai"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
)

// hostInterfaceNameSize is the fixed wire size of the NAME char array
// (spec section 8): valid names occupy 1..N-1 bytes, the last byte
// reserved for the NUL terminator.
const hostInterfaceNameSize = 32

func isPrintableASCII(name string) bool {
	if len(name) == 0 || len(name) > hostInterfaceNameSize-1 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return false
		}
	}
	return true
}

// CreateHostInterface requires TYPE; NETDEV additionally requires
// RIF_OR_PORT_ID (an existing port or RIF); FD additionally requires NAME.
func (sw *Switch) CreateHostInterface(ctx context.Context, attrs []sai.Attribute) (sai.ObjectID, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	typeAttr, ok := sai.Find(attrs, attr.HostInterfaceAttrType)
	if !ok {
		return 0, sai.StatusMandatoryAttributeMissing
	}

	var target sai.ObjectID
	switch typeAttr.Value.S32 {
	case attr.HostInterfaceTypeNetdev:
		rifOrPort, ok := sai.Find(attrs, attr.HostInterfaceAttrRifOrPortID)
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		kind := rifOrPort.Value.OID.TypeOf()
		if kind != sai.ObjectTypePort && kind != sai.ObjectTypeRouterInterface {
			return 0, sai.StatusInvalidParameter
		}
		if !s.exists(kind, rifOrPort.Value.OID) {
			return 0, sai.StatusInvalidParameter
		}
		target = rifOrPort.Value.OID
	case attr.HostInterfaceTypeFD:
		nameAttr, ok := sai.Find(attrs, attr.HostInterfaceAttrName)
		if !ok {
			return 0, sai.StatusMandatoryAttributeMissing
		}
		if !isPrintableASCII(nameAttr.Value.Chars) {
			return 0, sai.StatusInvalidParameter
		}
	case attr.HostInterfaceTypeGenetlink:
	default:
		return 0, sai.StatusInvalidParameter
	}

	vid, err := s.Trans.NextVID(ctx, sai.ObjectTypeHostInterface)
	if err != nil {
		return 0, err
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeHostInterface, objectRef(sai.ObjectTypeHostInterface, vid), bus.OpCreate, attrs); err != nil {
		return 0, err
	}
	s.insert(sai.ObjectTypeHostInterface, vid)
	if !target.IsNull() {
		s.Refs.Hold(target)
	}
	return vid, nil
}

func (sw *Switch) RemoveHostInterface(ctx context.Context, id sai.ObjectID) error {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeHostInterface, id) {
		return sai.StatusInvalidParameter
	}
	if err := s.pushMutation(ctx, sai.ObjectTypeHostInterface, objectRef(sai.ObjectTypeHostInterface, id), bus.OpRemove, nil); err != nil {
		return err
	}
	s.erase(sai.ObjectTypeHostInterface, id)
	return nil
}

func (sw *Switch) GetHostInterfaceAttribute(ctx context.Context, id sai.ObjectID, want []sai.Attribute) ([]sai.Attribute, sai.Status, error) {
	s := sw.lib
	s.lock()
	defer s.unlock()

	if !s.exists(sai.ObjectTypeHostInterface, id) {
		return nil, sai.StatusInvalidParameter, nil
	}
	return s.syncGet(ctx, sai.ObjectTypeHostInterface, objectRef(sai.ObjectTypeHostInterface, id), want)
}
