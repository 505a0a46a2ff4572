package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-layout-editor/internal/guard"
)

func TestNewRequiresDirtyCheck(t *testing.T) {
	if _, err := guard.New(nil, nil); !errors.Is(err, guard.ErrDirtyFuncRequired) {
		t.Fatalf("expected dirty-required, got %v", err)
	}
}

func TestShouldWarnOnExit(t *testing.T) {
	dirty := false
	g, err := guard.New(func() bool { return dirty }, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if g.ShouldWarnOnExit() {
		t.Fatalf("unarmed guard must not warn")
	}

	g.Register()
	if g.ShouldWarnOnExit() {
		t.Fatalf("clean state must not warn")
	}

	dirty = true
	if !g.ShouldWarnOnExit() {
		t.Fatalf("dirty state while armed should warn")
	}

	g.Deregister()
	if g.ShouldWarnOnExit() {
		t.Fatalf("disarmed guard must not warn")
	}
}

func TestConfirmLeaveCleanProceeds(t *testing.T) {
	g, _ := guard.New(func() bool { return false }, guard.ConfirmerFunc(func(ctx context.Context) (guard.Decision, error) {
		t.Fatalf("clean navigation must not prompt")
		return guard.DecisionCancel, nil
	}))
	g.Register()

	ok, err := g.ConfirmLeave(context.Background())
	if err != nil || !ok {
		t.Fatalf("clean state should proceed, got ok=%v err=%v", ok, err)
	}
}

func TestConfirmLeaveDecisions(t *testing.T) {
	cases := []struct {
		name     string
		decision guard.Decision
		want     bool
	}{
		{"discard proceeds", guard.DecisionDiscard, true},
		{"cancel stays", guard.DecisionCancel, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := guard.New(func() bool { return true }, guard.ConfirmerFunc(func(ctx context.Context) (guard.Decision, error) {
				return tc.decision, nil
			}))
			g.Register()
			ok, err := g.ConfirmLeave(context.Background())
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("decision %s: got %v, want %v", tc.decision, ok, tc.want)
			}
		})
	}
}

func TestConfirmLeaveWithoutConfirmerRefuses(t *testing.T) {
	g, _ := guard.New(func() bool { return true }, nil)
	g.Register()
	ok, err := g.ConfirmLeave(context.Background())
	if err != nil || ok {
		t.Fatalf("dirty state without a confirmer should refuse, got ok=%v err=%v", ok, err)
	}
}

func TestConfirmLeavePropagatesPromptError(t *testing.T) {
	boom := errors.New("dialog torn down")
	g, _ := guard.New(func() bool { return true }, guard.ConfirmerFunc(func(ctx context.Context) (guard.Decision, error) {
		return "", boom
	}))
	g.Register()
	ok, err := g.ConfirmLeave(context.Background())
	if ok || !errors.Is(err, boom) {
		t.Fatalf("prompt failure should refuse and surface the error, got ok=%v err=%v", ok, err)
	}
}

func TestDeregisterUnblocksNavigation(t *testing.T) {
	g, _ := guard.New(func() bool { return true }, nil)
	g.Register()
	g.Deregister()
	g.Deregister() // idempotent

	ok, err := g.ConfirmLeave(context.Background())
	if err != nil || !ok {
		t.Fatalf("disarmed guard should always proceed, got ok=%v err=%v", ok, err)
	}
}
