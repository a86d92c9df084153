package main

import (
	"context"
	"hash/fnv"

	checkinout "examprep/internal/modules/checkin/adapter/out"
	quoterpc "examprep/internal/modules/checkin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// server hands out one quote per calendar day so repeated check-ins on the
// same day read the same line.
type server struct {
	pool []string
}

func (s *server) GetMetadata(_ context.Context, _ *quoterpc.Empty) (*quoterpc.Metadata, error) {
	return &quoterpc.Metadata{
		Name:     "daily-quotes",
		Version:  "1.0.0",
		PoolSize: int32(len(s.pool)),
	}, nil
}

func (s *server) NextQuote(_ context.Context, in *quoterpc.QuoteRequest) (*quoterpc.QuoteResponse, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(in.DateKey))
	return &quoterpc.QuoteResponse{Text: s.pool[int(h.Sum32()%uint32(len(s.pool)))]}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: quoterpc.HandshakeConfig,
		Plugins:         quoterpc.PluginMap(&server{pool: checkinout.DefaultQuotes()}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
