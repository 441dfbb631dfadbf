package audithook_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/xraph/tokenledger"
	audithook "github.com/xraph/tokenledger/audit_hook"
	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/store/memory"
	"github.com/xraph/tokenledger/types"
)

type sink struct {
	mu     sync.Mutex
	events []*audithook.AuditEvent
}

func (s *sink) Record(_ context.Context, e *audithook.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *sink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Action
	}
	return out
}

func newLedger(t *testing.T, ext *audithook.Extension) *tokenledger.Ledger {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := tokenledger.New("eosio.token", memory.New(),
		tokenledger.WithLogger(quiet),
		tokenledger.WithPlugin(ext),
	)
	if err := l.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRecordsCommittedActions(t *testing.T) {
	s := &sink{}
	l := newLedger(t, audithook.New(s))

	ctx := auth.WithAuthority(context.Background(), "eosio.token", "alice")
	mustOK(t, l.Create(ctx, "alice", types.MustAsset("100.00 TKN")))
	mustOK(t, l.Issue(ctx, "bob", types.MustAsset("10.00 TKN"), "hello"))
	mustOK(t, l.Approve(ctx, "alice", "carol", types.MustAsset("1.00 TKN")))

	want := []string{
		audithook.ActionCurrencyCreated,
		audithook.ActionTokensIssued,
		audithook.ActionTokensTransferred,
		audithook.ActionAllowanceApproved,
	}
	got := s.actions()
	if len(got) != len(want) {
		t.Fatalf("actions: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d: got %s, want %s", i, got[i], want[i])
		}
	}

	fwd := s.events[2]
	if fwd.ResourceID != "alice" || fwd.Metadata["to"] != types.Name("bob") || fwd.Metadata["inline"] != true {
		t.Errorf("inline transfer event: %+v", fwd)
	}
	if fwd.Metadata["memo"] != "hello" {
		t.Errorf("memo: got %v", fwd.Metadata["memo"])
	}
}

func TestRecordsRejections(t *testing.T) {
	s := &sink{}
	l := newLedger(t, audithook.New(s))

	err := l.Create(auth.WithAuthority(context.Background(), "mallory"), "mallory", types.MustAsset("1.00 BAD"))
	if !tokenledger.IsUnauthorized(err) {
		t.Fatalf("got %v, want unauthorized", err)
	}

	if len(s.events) != 1 {
		t.Fatalf("events: got %d, want 1", len(s.events))
	}
	e := s.events[0]
	if e.Action != audithook.ActionOperationRejected || e.Outcome != audithook.OutcomeFailure {
		t.Errorf("event: %+v", e)
	}
	if e.Severity != audithook.SeverityWarning || e.Category != "authorization" || e.Reason == "" {
		t.Errorf("severity %s, category %s, reason %q", e.Severity, e.Category, e.Reason)
	}
}

func TestActionFilters(t *testing.T) {
	ctx := auth.WithAuthority(context.Background(), "eosio.token", "alice")

	t.Run("enabled", func(t *testing.T) {
		s := &sink{}
		l := newLedger(t, audithook.New(s, audithook.WithEnabledActions(audithook.ActionTokensIssued)))
		mustOK(t, l.Create(ctx, "alice", types.MustAsset("100.00 TKN")))
		mustOK(t, l.Issue(ctx, "alice", types.MustAsset("1.00 TKN"), ""))

		if got := s.actions(); len(got) != 1 || got[0] != audithook.ActionTokensIssued {
			t.Errorf("actions: got %v", got)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		s := &sink{}
		l := newLedger(t, audithook.New(s, audithook.WithDisabledActions(audithook.ActionCurrencyCreated)))
		mustOK(t, l.Create(ctx, "alice", types.MustAsset("100.00 TKN")))
		mustOK(t, l.Issue(ctx, "alice", types.MustAsset("1.00 TKN"), ""))

		if got := s.actions(); len(got) != 1 || got[0] != audithook.ActionTokensIssued {
			t.Errorf("actions: got %v", got)
		}
	})
}

func TestRecorderErrorsAreLogged(t *testing.T) {
	failing := audithook.RecorderFunc(func(context.Context, *audithook.AuditEvent) error {
		return errors.New("backend down")
	})
	ext := audithook.New(failing, audithook.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	l := newLedger(t, ext)

	ctx := auth.WithAuthority(context.Background(), "eosio.token")
	mustOK(t, l.Create(ctx, "alice", types.MustAsset("100.00 TKN")))
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
