package driver

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type mockManager struct {
	ticks atomic.Int32
	err   error
}

func (m *mockManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	errBoom := errors.New("boom")

	tests := map[string]struct {
		managers map[string]*mockManager
		expErrs  []string
	}{
		"all managers tick": {
			managers: map[string]*mockManager{"generate": {}, "cleanup": {}},
		},
		"error does not stop later managers": {
			managers: map[string]*mockManager{"generate": {err: errBoom}, "cleanup": {}},
			expErrs:  []string{"generate: boom"},
		},
		"every error is reported": {
			managers: map[string]*mockManager{"generate": {err: errBoom}, "cleanup": {err: errBoom}},
			expErrs:  []string{"generate: boom", "cleanup: boom"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var opts []DriverOpt
			for n, m := range tt.managers {
				opts = append(opts, WithManager(n, m))
			}

			err := NewDriver(opts...).Tick(context.Background())

			for _, m := range tt.managers {
				testutil.AssertEqual(t, "ticks", m.ticks.Load(), int32(1))
			}

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected errors %v, got nil", tt.expErrs)
			}
			for _, e := range tt.expErrs {
				if !strings.Contains(err.Error(), e) {
					t.Errorf("error %q does not contain %q", err.Error(), e)
				}
			}
		})
	}
}

func TestDriver_Start(t *testing.T) {
	m := &mockManager{}
	d := NewDriver(WithManager("generate", m), WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(5 * time.Second)
	for m.ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDriver_Start_StopsAfterRepeatedFailures(t *testing.T) {
	m := &mockManager{err: errors.New("boom")}
	d := NewDriver(WithManager("generate", m), WithTickLength(time.Millisecond), WithMaxFailures(3))

	done := make(chan error, 1)
	go func() { done <- d.Start(context.Background()) }()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "3 consecutive ticks failed") {
			t.Errorf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "ticks", m.ticks.Load(), int32(3))
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestDriver_Start_KeepsRunningThroughFailures(t *testing.T) {
	m := &mockManager{err: errors.New("boom")}
	d := NewDriver(WithManager("generate", m), WithTickLength(time.Millisecond), WithMaxFailures(0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(5 * time.Second)
	for m.ticks.Load() < 10 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		case err := <-done:
			t.Fatalf("driver stopped early: %v", err)
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
