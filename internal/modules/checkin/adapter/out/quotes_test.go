package out_test

import (
	"context"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	checkinadapter "examprep/internal/modules/checkin/adapter/out"
	"examprep/internal/platform/clock"
)

type fixedQuote string

func (q fixedQuote) Next(context.Context) string { return string(q) }

func TestEmbeddedQuotesDrawFromPool(t *testing.T) {
	t.Parallel()
	pool := checkinadapter.DefaultQuotes()
	if len(pool) != 20 {
		t.Fatalf("expected 20 built-in quotes, got %d", len(pool))
	}
	members := map[string]bool{}
	for _, q := range pool {
		members[q] = true
	}
	quotes := checkinadapter.NewEmbeddedQuotes(nil, rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for i := 0; i < 400; i++ {
		q := quotes.Next(context.Background())
		if !members[q] {
			t.Fatalf("quote outside pool: %q", q)
		}
		seen[q] = true
	}
	if len(seen) < 10 {
		t.Fatalf("expected a spread of quotes, saw %d distinct", len(seen))
	}
}

func TestEmbeddedQuotesSingleEntryPool(t *testing.T) {
	t.Parallel()
	quotes := checkinadapter.NewEmbeddedQuotes([]string{"only"}, nil)
	if got := quotes.Next(context.Background()); got != "only" {
		t.Fatalf("expected only quote, got %q", got)
	}
}

func TestPluginQuoteSourceFallsBackWhenBinaryMissing(t *testing.T) {
	t.Parallel()
	source := checkinadapter.NewPluginQuoteSource(
		filepath.Join(t.TempDir(), "missing-plugin"),
		fixedQuote("fallback"),
		clock.SystemClock{},
		nil,
	)
	defer source.Close()
	if got := source.Next(context.Background()); got != "fallback" {
		t.Fatalf("expected fallback quote, got %q", got)
	}
}

func TestPluginQuoteSourceIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the quote plugin")
	}
	binPath := buildQuotePlugin(t)
	now := time.Date(2026, 2, 3, 21, 0, 0, 0, time.Local)
	source := checkinadapter.NewPluginQuoteSource(binPath, fixedQuote("fallback"), clock.Fixed(now), nil)
	defer source.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := source.Metadata(ctx)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "daily-quotes" || meta.PoolSize != 20 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	first := source.Next(ctx)
	if first == "fallback" || first == "" {
		t.Fatalf("expected plugin quote, got %q", first)
	}
	if second := source.Next(ctx); second != first {
		t.Fatalf("expected same quote for the same day, got %q and %q", first, second)
	}
}

func buildQuotePlugin(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "quotes-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/quotes")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build quote plugin: %v\n%s", err, string(out))
	}
	if _, err := os.Stat(binPath); err != nil {
		t.Fatalf("stat built plugin: %v", err)
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
