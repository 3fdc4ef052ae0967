package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testFactory(p ModelProvider, err error) ProviderFactory {
	return func() (ModelProvider, error) { return p, err }
}

func newTestAgent(t *testing.T, def *Definition) *Agent {
	t.Helper()
	if def == nil {
		def = &Definition{Name: "demo", Bio: "A test agent.", LoopInterval: 1}
	}
	a, err := New(def, testFactory(&echoProvider{}, nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func TestDefinitionValidate(t *testing.T) {
	if err := (&Definition{Name: "ok"}).Validate(); err != nil {
		t.Errorf("valid definition rejected: %v", err)
	}
	if err := (&Definition{}).Validate(); !errors.Is(err, ErrNoName) {
		t.Errorf("empty name: got %v, want ErrNoName", err)
	}
	if err := (&Definition{Name: "   "}).Validate(); !errors.Is(err, ErrNoName) {
		t.Errorf("blank name: got %v, want ErrNoName", err)
	}
}

func TestNewFillsDefaults(t *testing.T) {
	a := newTestAgent(t, &Definition{Name: "demo"})

	if a.Model() == "" {
		t.Error("model default not applied")
	}
	if a.loopInterval <= 0 {
		t.Errorf("loop interval = %v, want positive default", a.loopInterval)
	}
}

func TestPerformActionResult(t *testing.T) {
	a := newTestAgent(t, nil)

	got, err := a.PerformAction(context.Background(), "conn", "act", []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("PerformAction: %v", err)
	}
	for _, want := range []string{`"act"`, `"conn"`, "p1 p2"} {
		if !strings.Contains(got, want) {
			t.Errorf("result %q missing %q", got, want)
		}
	}
}

func TestPerformActionCancelled(t *testing.T) {
	a := newTestAgent(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.PerformAction(ctx, "conn", "act", nil); err == nil {
		t.Error("PerformAction on cancelled context returned nil error")
	}
}

func TestRunLoopStopsOnCancel(t *testing.T) {
	a := newTestAgent(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.RunLoop(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunLoop = %v, cancellation is not an error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunLoop did not stop after context cancellation")
	}
}

func TestModelReadySticky(t *testing.T) {
	calls := 0
	a, err := New(&Definition{Name: "demo"}, func() (ModelProvider, error) {
		calls++
		return &echoProvider{}, nil
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if a.ModelReady() {
		t.Error("ModelReady true before initialization")
	}
	if err := a.EnsureModelReady(); err != nil {
		t.Fatalf("EnsureModelReady: %v", err)
	}
	if err := a.EnsureModelReady(); err != nil {
		t.Fatalf("second EnsureModelReady: %v", err)
	}
	if calls != 1 {
		t.Errorf("provider factory called %d times, want 1", calls)
	}
	if !a.ModelReady() {
		t.Error("ModelReady false after initialization")
	}
}

func TestEnsureModelReadyFailureNotSticky(t *testing.T) {
	a, err := New(&Definition{Name: "demo"}, testFactory(nil, errors.New("no provider")))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := a.EnsureModelReady(); err == nil {
		t.Fatal("EnsureModelReady succeeded with failing factory")
	}
	if a.ModelReady() {
		t.Error("ModelReady set despite factory failure")
	}
}

func TestPromptModelRequiresInit(t *testing.T) {
	a := newTestAgent(t, nil)

	if _, err := a.PromptModel(context.Background(), "hi"); !errors.Is(err, ErrModelNotReady) {
		t.Errorf("PromptModel before init: got %v, want ErrModelNotReady", err)
	}
}

func TestPromptModelIncludesBio(t *testing.T) {
	var gotSystem string
	a, err := New(&Definition{Name: "demo", Bio: "A curious bot."},
		testFactory(captureProvider{system: &gotSystem}, nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.EnsureModelReady(); err != nil {
		t.Fatalf("EnsureModelReady: %v", err)
	}

	if _, err := a.PromptModel(context.Background(), "hi"); err != nil {
		t.Fatalf("PromptModel: %v", err)
	}
	if !strings.Contains(gotSystem, "demo") || !strings.Contains(gotSystem, "A curious bot.") {
		t.Errorf("system message = %q, want agent name and bio", gotSystem)
	}
}

type captureProvider struct {
	system *string
}

func (p captureProvider) Name() string { return "capture" }

func (p captureProvider) Complete(ctx context.Context, system, user string) (string, error) {
	*p.system = system
	return "ok", nil
}
