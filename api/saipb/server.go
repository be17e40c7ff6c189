package saipb

import (
	"context"

	"github.com/opencompute/go-sairedis/internal/obslog"
	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

// Introspector implements Server against the daemon's live Bus,
// translation Store, and vendor SDK. It is constructed in-process by
// cmd/saisyncd and registered on a grpc.Server listening on the RPC
// address (rpc.address in the config) - it never owns the objects it reports
// on, it only reads them.
type Introspector struct {
	Bus   *bus.Bus
	Trans *translation.Store
	SDK   vendor.SDK
}

var _ Server = (*Introspector)(nil)

func (s *Introspector) Status(ctx context.Context, _ *StatusRequest) (*StatusResponse, error) {
	size, err := s.Trans.Size(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		BusDepths: map[string]int32{
			"asic_state":  int32(s.Bus.AsicState.Len()),
			"get_request": int32(s.Bus.GetRequest.Len()),
			"response":    int32(s.Bus.Response.Len()),
			"notify":      int32(s.Bus.Notify.Len()),
		},
		TranslationSize: int64(size),
		LogLevel:        string(obslog.CurrentLevel(obslog.ComponentSyncd)),
	}, nil
}

func (s *Introspector) SetLevel(ctx context.Context, req *SetLevelRequest) (*SetLevelResponse, error) {
	if req.Level == "" {
		obslog.ClearComponentLevel(req.Component)
	} else {
		obslog.SetComponentLevel(req.Component, obslog.Level(req.Level))
	}
	return &SetLevelResponse{}, nil
}

func (s *Introspector) Diag(ctx context.Context, _ *DiagRequest) (*DiagResponse, error) {
	if err := s.SDK.Diag(ctx); err != nil {
		return &DiagResponse{Ok: false, Error: err.Error()}, nil
	}
	return &DiagResponse{Ok: true}, nil
}
