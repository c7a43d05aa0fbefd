package runtime

import (
	"context"
	"strings"
	"testing"
)

func TestFromContextReturnsRuntime(t *testing.T) {
	rt := New("portview")
	defer rt.CancelCtx()

	if got := FromContext(rt.Ctx()); got != rt {
		t.Fatalf("FromContext returned %p, want %p", got, rt)
	}
	if FromContext(context.Background()) != nil {
		t.Fatal("FromContext on a bare context should be nil")
	}
}

func TestGoNamedRecordsPanicAndCancels(t *testing.T) {
	rt := New("filemover")

	rt.GoNamed("relocate", func() { panic("disk on fire") })
	err := rt.Wait()
	if err == nil || !strings.Contains(err.Error(), "relocate panic: disk on fire") {
		t.Fatalf("Wait returned %v", err)
	}

	select {
	case <-rt.Ctx().Done():
	default:
		t.Fatal("context should be cancelled after a goroutine panic")
	}
}

func TestGoNamedWithoutFailure(t *testing.T) {
	rt := New("filemover")
	defer rt.CancelCtx()

	done := make(chan struct{})
	rt.GoNamed("", func() { close(done) })
	if err := rt.Wait(); err != nil {
		t.Fatalf("Wait returned %v", err)
	}
	<-done
	if rt.Ctx().Err() != nil {
		t.Fatal("context cancelled without failure")
	}
}
