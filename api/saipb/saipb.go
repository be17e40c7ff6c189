// Package saipb is the gRPC introspection side channel the daemon exposes
// for saictl (spec DOMAIN STACK): bus queue depths, translation-store
// size, and current log level. It never carries a SAI mutation - those go
// through pkg/bus, the system of record for library<->daemon RPC.
//
// Grounded on the teacher's api/proto + cmd/osvbngcli's bngpb.BNGServiceClient
// pattern, but without a protoc toolchain: message types are plain Go
// structs, the service is wired with a hand-written grpc.ServiceDesc, and
// the wire format is a small gob-based encoding.Codec rather than
// protobuf. google.golang.org/protobuf is not carried by this repo (see
// DESIGN.md); hand-authoring the Reset/String/ProtoReflect machinery
// protoc-gen-go normally emits would be faking a code generator, not
// reimplementing a system.
package saipb

import (
	"bytes"
	"context"
	"encoding/gob"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const serviceName = "saipb.SaiSyncd"
const codecName = "gob"

func init() {
	encoding.RegisterCodec(gobCodec{})
}

// gobCodec is the wire codec for this service. Registered under the name
// "gob" and selected per-call via grpc.CallContentSubtype on the client
// and negotiated automatically on the server from the request's
// content-type.
type gobCodec struct{}

func (gobCodec) Name() string { return codecName }

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// StatusRequest queries the daemon's current bus/translation/logging
// state. It carries no fields; every field on StatusResponse is always
// populated.
type StatusRequest struct{}

// StatusResponse reports one snapshot of daemon state. BusDepths is keyed
// by queue name ("asic_state", "get_request", "response", "notify").
type StatusResponse struct {
	BusDepths       map[string]int32
	TranslationSize int64
	LogLevel        string
}

// SetLevelRequest adjusts (or clears, when Level is empty) the log level
// override for one component.
type SetLevelRequest struct {
	Component string
	Level     string
}

type SetLevelResponse struct{}

// DiagRequest triggers one immediate vendor diag query, independent of
// the daemon's periodic diag-shell thread.
type DiagRequest struct{}

type DiagResponse struct {
	Ok    bool
	Error string
}

// Server is the introspection service the daemon implements.
type Server interface {
	Status(ctx context.Context, req *StatusRequest) (*StatusResponse, error)
	SetLevel(ctx context.Context, req *SetLevelRequest) (*SetLevelResponse, error)
	Diag(ctx context.Context, req *DiagRequest) (*DiagResponse, error)
}

func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "SetLevel", Handler: setLevelHandler},
		{MethodName: "Diag", Handler: diagHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "saipb.go",
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Status"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func setLevelHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetLevelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).SetLevel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SetLevel"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).SetLevel(ctx, req.(*SetLevelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func diagHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DiagRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Server).Diag(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Diag"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Server).Diag(ctx, req.(*DiagRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a thin wrapper over a grpc.ClientConnInterface, mirroring the
// teacher's generated bngpb.BNGServiceClient shape closely enough that
// saictl's call sites read the same way.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	opts = append(opts, grpc.CallContentSubtype(codecName))
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Status", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetLevel(ctx context.Context, in *SetLevelRequest, opts ...grpc.CallOption) (*SetLevelResponse, error) {
	out := new(SetLevelResponse)
	opts = append(opts, grpc.CallContentSubtype(codecName))
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SetLevel", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Diag(ctx context.Context, in *DiagRequest, opts ...grpc.CallOption) (*DiagResponse, error) {
	out := new(DiagResponse)
	opts = append(opts, grpc.CallContentSubtype(codecName))
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Diag", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
