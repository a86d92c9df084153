package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "quotes"
	serviceName       = "examprep.quotes.v1.QuoteSource"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodNextQuote   = "/" + serviceName + "/NextQuote"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "EXAMPREP_QUOTE_PLUGIN",
	MagicCookieValue: "examprep",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	PoolSize int32  `json:"pool_size"`
}

type QuoteRequest struct {
	DateKey string `json:"date_key"`
}

type QuoteResponse struct {
	Text string `json:"text"`
}

type QuoteServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	NextQuote(ctx context.Context, in *QuoteRequest) (*QuoteResponse, error)
}

type QuoteClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	NextQuote(ctx context.Context, in *QuoteRequest) (*QuoteResponse, error)
}

type quoteClient struct {
	conn *grpc.ClientConn
}

func NewQuoteClient(conn *grpc.ClientConn) QuoteClient {
	return &quoteClient{conn: conn}
}

func (c *quoteClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *quoteClient) NextQuote(ctx context.Context, in *QuoteRequest) (*QuoteResponse, error) {
	out := &QuoteResponse{}
	if err := c.conn.Invoke(ctx, methodNextQuote, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to grpc.MethodDesc, honoring interceptors.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type %T", req)
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterQuoteServer(server grpc.ServiceRegistrar, impl QuoteServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*QuoteServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "NextQuote", Handler: unary(methodNextQuote, impl.NextQuote)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "quotes-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl QuoteServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterQuoteServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewQuoteClient(conn), nil
}

func PluginMap(impl QuoteServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
