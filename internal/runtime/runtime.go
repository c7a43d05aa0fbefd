package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	goruntime "runtime"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/0xa1bed0/deskutils/internal/logs"
)

type Runtime struct {
	app string

	ctx        context.Context    // global context
	cancelFunc context.CancelFunc // cancelFunc of global context
	stopSignal context.CancelFunc

	mu sync.Mutex
	wg sync.WaitGroup

	term *TerminalGuard

	firstFailErr error
}

type runtimeKey struct{}

// New creates the process-wide runtime for app. Its context is cancelled on
// SIGINT/SIGTERM or by CancelCtx.
func New(app string) *Runtime {
	baseCtx, cancel := context.WithCancel(context.Background())
	sigCtx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)

	rt := &Runtime{
		app:        app,
		cancelFunc: cancel,
		stopSignal: stop,
		term:       NewTerminalGuard(),
	}
	// The runtime travels in the command context so cobra handlers can get
	// it back with FromContext; nothing below the cmd layer should do that.
	rt.ctx = context.WithValue(sigCtx, runtimeKey{}, rt)
	return rt
}

func FromContext(ctx context.Context) *Runtime {
	v := ctx.Value(runtimeKey{})
	if v == nil {
		return nil
	}
	rt, _ := v.(*Runtime)
	return rt
}

func FromContextOrPanic(ctx context.Context) *Runtime {
	rt := FromContext(ctx)
	if rt == nil {
		panic(errors.New("runtime not found in this context"))
	}
	return rt
}

func (rt *Runtime) App() string {
	return rt.app
}

func (rt *Runtime) Ctx() context.Context {
	return rt.ctx
}

func (rt *Runtime) CancelCtx() {
	rt.cancelFunc()
}

func (rt *Runtime) GOOS() string {
	return goruntime.GOOS
}

func (rt *Runtime) Term() *TerminalGuard {
	return rt.term
}

// GoNamed runs fn in a new goroutine with panic recovery. A panic is
// recorded as the runtime's first failure and cancels the context; Wait
// returns it.
func (rt *Runtime) GoNamed(name string, fn func()) {
	if name == "" {
		name = "anonymous"
	}
	rt.wg.Go(func() {
		logs.Debugf("%s goroutine start", name)
		defer func() {
			if r := recover(); r != nil {
				rt.fail(fmt.Errorf("%s panic: %v\n%s", name, r, debug.Stack()))
			}
		}()

		fn()
		logs.Debugf("%s goroutine finish", name)
	})
}

func (rt *Runtime) fail(err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.firstFailErr == nil {
		rt.firstFailErr = err
		rt.cancelFunc()
	}
}

func (rt *Runtime) Wait() error {
	rt.wg.Wait()

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.firstFailErr
}

// Finalize handles both panic and normal exit.
// Call it in a defer at the top of main.
func (rt *Runtime) Finalize(helpHint string, execErr *error) {
	if r := recover(); r != nil {
		if rt.term != nil {
			rt.term.Restore()
		}

		fmt.Fprintf(os.Stderr, "%s panic: %v\n", rt.app, r)
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
		fmt.Fprintln(os.Stderr, "")
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}

		rt.CancelCtx()
		_ = rt.Wait()

		logs.Close()
		os.Exit(1)
	}

	rt.CancelCtx()
	rt.stopSignal()
	waitErr := rt.Wait()

	exitCode := 0
	if execErr != nil && *execErr != nil {
		logs.Errorf("%s error: %v", rt.app, *execErr)
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}
		exitCode = 1
	} else if waitErr != nil {
		logs.Errorf("%s fail reason: %v", rt.app, waitErr)
		exitCode = 1
	}

	logs.Close()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
