package out

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	quoterpc "examprep/internal/modules/checkin/adapter/out/rpc"
	checkinout "examprep/internal/modules/checkin/port/out"
	"examprep/internal/platform/clock"
	"examprep/internal/platform/datemath"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultPluginStartTimeout = 3 * time.Second
	defaultPluginCallTimeout  = 2 * time.Second
)

// PluginQuoteSource asks an external go-plugin binary for quotes and falls
// back to another source whenever the plugin cannot answer.
type PluginQuoteSource struct {
	binary   string
	fallback checkinout.QuoteSource
	clock    clock.Clock
	logger   hclog.Logger

	mu     sync.Mutex
	client *plugin.Client
	quotes quoterpc.QuoteClient
}

func NewPluginQuoteSource(binary string, fallback checkinout.QuoteSource, clk clock.Clock, logger hclog.Logger) *PluginQuoteSource {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginQuoteSource{
		binary:   binary,
		fallback: fallback,
		clock:    clk,
		logger:   logger.Named("quote-plugin"),
	}
}

var _ checkinout.QuoteSource = (*PluginQuoteSource)(nil)

func (s *PluginQuoteSource) Next(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.connect()
	if err != nil {
		s.logger.Warn("plugin unavailable, using embedded quotes", "binary", s.binary, "error", err)
		return s.fallback.Next(ctx)
	}
	callCtx, cancel := callContext(ctx, defaultPluginCallTimeout)
	defer cancel()
	resp, err := quotes.NextQuote(callCtx, &quoterpc.QuoteRequest{DateKey: datemath.FormatDateKey(s.clock.Now())})
	if err != nil {
		s.logger.Warn("plugin call failed, using embedded quotes", "error", err)
		s.resetLocked()
		return s.fallback.Next(ctx)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		s.logger.Warn("plugin returned empty quote, using embedded quotes")
		return s.fallback.Next(ctx)
	}
	return text
}

// Metadata reports what the plugin says about itself; used by diagnostics.
func (s *PluginQuoteSource) Metadata(ctx context.Context) (quoterpc.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.connect()
	if err != nil {
		return quoterpc.Metadata{}, err
	}
	callCtx, cancel := callContext(ctx, defaultPluginCallTimeout)
	defer cancel()
	meta, err := quotes.GetMetadata(callCtx)
	if err != nil {
		s.resetLocked()
		return quoterpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (s *PluginQuoteSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

func (s *PluginQuoteSource) connect() (quoterpc.QuoteClient, error) {
	if s.quotes != nil {
		return s.quotes, nil
	}
	if strings.TrimSpace(s.binary) == "" {
		return nil, fmt.Errorf("no plugin binary configured")
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  quoterpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          quoterpc.PluginMap(nil),
		Cmd:              exec.Command(s.binary),
		Managed:          true,
		StartTimeout:     defaultPluginStartTimeout,
		Logger:           s.logger,
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(quoterpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(quoterpc.QuoteClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	s.client = client
	s.quotes = typed
	return typed, nil
}

func (s *PluginQuoteSource) resetLocked() {
	if s.client != nil {
		s.client.Kill()
	}
	s.client = nil
	s.quotes = nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
