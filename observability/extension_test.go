package observability_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/observability"
	"github.com/xraph/tokenledger/store/memory"
	"github.com/xraph/tokenledger/types"
)

type metric struct {
	mu    sync.Mutex
	count float64
	obs   []float64
}

func (m *metric) Inc() { m.Add(1) }

func (m *metric) Add(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count += v
}

func (m *metric) Observe(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, v)
}

type factory struct {
	metrics map[string]*metric
}

func newFactory() *factory { return &factory{metrics: make(map[string]*metric)} }

func (f *factory) get(name string) *metric {
	m, ok := f.metrics[name]
	if !ok {
		m = &metric{}
		f.metrics[name] = m
	}
	return m
}

func (f *factory) Counter(name string) observability.Counter     { return f.get(name) }
func (f *factory) Histogram(name string) observability.Histogram { return f.get(name) }

func TestMetrics(t *testing.T) {
	f := newFactory()
	l := tokenledger.New("eosio.token", memory.New(),
		tokenledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		tokenledger.WithPlugin(observability.NewMetricsExtension(f)),
	)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx := auth.WithAuthority(context.Background(), "eosio.token", "alice", "bob")
	steps := []error{
		l.Create(ctx, "alice", types.MustAsset("100.00 TKN")),
		l.Issue(ctx, "bob", types.MustAsset("10.00 TKN"), ""),
		l.Approve(ctx, "bob", "carol", types.MustAsset("2.50 TKN")),
		l.TransferFrom(auth.WithAuthority(context.Background(), "carol"), "bob", "dave", "carol", types.MustAsset("2.50 TKN"), ""),
		l.Approve(ctx, "bob", "carol", types.MustAsset("0.00 TKN")),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if err := l.Retire(auth.WithAuthority(context.Background(), "bob"), types.MustAsset("1.00 TKN"), ""); err == nil {
		t.Fatal("retire without issuer authority should fail")
	}

	counters := map[string]float64{
		"tokenledger.currency.created":      1,
		"tokenledger.issue":                 1,
		"tokenledger.transfer":              1,
		"tokenledger.transfer.inline":       1,
		"tokenledger.allowance.approved":    1,
		"tokenledger.allowance.revoked":     1,
		"tokenledger.transferfrom":          1,
		"tokenledger.receipts":              5,
		"tokenledger.rejected":              1,
		"tokenledger.rejected.unauthorized": 1,
		"tokenledger.store.errors":          0,
	}
	for name, want := range counters {
		if got := f.get(name).count; got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	amounts := f.get("tokenledger.transfer.amount").obs
	if len(amounts) != 2 || amounts[0] != 10 || amounts[1] != 2.5 {
		t.Errorf("transfer amounts: got %v, want [10 2.5]", amounts)
	}
	if actions := f.get("tokenledger.receipt.actions").obs; len(actions) != 5 || actions[1] != 2 {
		t.Errorf("receipt actions: got %v", actions)
	}
}
