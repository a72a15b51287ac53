// Package script runs Lua split and factionalize callbacks over text
// segments using gopher-lua.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoFunction is returned when a required global function is missing.
	ErrNoFunction = errors.New("lua function not defined")

	// ErrBadReturn is returned when a callback returns values of the wrong type.
	ErrBadReturn = errors.New("lua callback returned unexpected values")
)

// Defaults for State.
const (
	DefaultTimeout = 2 * time.Second
	DefaultWindow  = 4096
)

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes calls made
// from Go.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	window  int
	logger  zerolog.Logger
	closed  bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout bounds every DoFile, DoString and Call.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithWindow limits how many elements of the remaining text a callback sees.
// Zero passes the whole remainder.
func WithWindow(n int) Option {
	return func(s *State) {
		s.window = n
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *State) {
		s.logger = l
	}
}

// New creates a Lua state with only the base, table, string and math
// libraries opened.
func New(opts ...Option) *State {
	s := &State{
		timeout: DefaultTimeout,
		window:  DefaultWindow,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	return s
}

// openSafeLibraries opens the libraries callbacks need and removes the base
// functions that load code from disk.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	err := s.run(func() error { return s.L.DoFile(path) })
	if err != nil {
		return fmt.Errorf("script: load %s: %w", path, err)
	}
	s.logger.Debug().Str("path", path).Msg("script loaded")
	return nil
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	if err := s.run(func() error { return s.L.DoString(code) }); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// HasFunc reports whether a global function called name is defined.
func (s *State) HasFunc(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.L.GetGlobal(name).Type() == lua.LTFunction
}

// Call calls a global Lua function and returns all of its results.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(func() error {
		fnVal := s.L.GetGlobal(fn)
		if fnVal.Type() != lua.LTFunction {
			return fmt.Errorf("%w: %s", ErrNoFunction, fn)
		}

		top := s.L.GetTop()
		s.L.Push(fnVal)
		for _, arg := range args {
			s.L.Push(arg)
		}
		if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}

		n := s.L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := range n {
			results[i] = s.L.Get(top + i + 1)
		}
		s.L.Pop(n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("script: call %s: %w", fn, err)
	}
	return results, nil
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// run executes fn under the lock with the configured timeout, turning Lua
// panics into errors.
func (s *State) run(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.L.SetContext(ctx)
		defer func() {
			s.L.RemoveContext()
			cancel()
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
