package scripting

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

// PredicateFunc is the Lua global a predicate script must define.
const PredicateFunc = "accept"

// ErrNoPredicate is returned when a script does not define accept(level).
var ErrNoPredicate = errors.New("script does not define function " + PredicateFunc)

// ErrPredicateClosed is returned by Evaluate after Close.
var ErrPredicateClosed = errors.New("scripting: predicate is closed")

// Predicate is a compiled Lua accept(level) function.
//
// Predicate is safe for concurrent use; calls are serialized on one LState.
type Predicate struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel func()
	fn     lua.LValue
	limit  int
	closed bool
	logger *zap.Logger
}

// CompilePredicate loads src into a sandboxed LState and resolves accept.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a ready Predicate, or an error when src fails to load
// or does not define accept as a function.
func CompilePredicate(src string, instLimit int, logger *zap.Logger) (*Predicate, error) {
	L, cancel := NewSandboxedState(instLimit)
	if err := L.DoString(src); err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: loading predicate: %w", err)
	}
	fn := L.GetGlobal(PredicateFunc)
	if fn.Type() != lua.LTFunction {
		cancel()
		L.Close()
		return nil, ErrNoPredicate
	}
	return &Predicate{
		L:      L,
		cancel: cancel,
		fn:     fn,
		limit:  instLimit,
		logger: logger,
	}, nil
}

// Evaluate calls accept with a table of r's metrics. Undefined metrics are
// absent from the table; map_size is a table with rows and cols.
//
// Postcondition: Returns the truthiness of accept's first return value, or an
// error on a Lua runtime failure, an exhausted instruction budget, or after
// Close (ErrPredicateClosed).
func (p *Predicate) Evaluate(r metrics.Result) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, ErrPredicateClosed
	}

	p.cancel()
	p.cancel = limitInstructions(p.L, p.limit)

	if err := p.L.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, resultTable(p.L, r)); err != nil {
		p.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", PredicateFunc),
			zap.Error(err),
		)
		return false, fmt.Errorf("scripting: evaluating %s: %w", PredicateFunc, err)
	}

	ret := p.L.Get(-1)
	p.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the underlying LState. Calling Close more than once is a no-op.
func (p *Predicate) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.cancel()
	p.L.Close()
}

func resultTable(L *lua.LState, r metrics.Result) *lua.LTable {
	t := L.NewTable()
	r.Each(func(key string, value any) {
		switch v := value.(type) {
		case float64:
			t.RawSetString(key, lua.LNumber(v))
		case int:
			t.RawSetString(key, lua.LNumber(v))
		case bool:
			t.RawSetString(key, lua.LBool(v))
		case metrics.Size:
			size := L.NewTable()
			size.RawSetString("rows", lua.LNumber(v.Rows))
			size.RawSetString("cols", lua.LNumber(v.Cols))
			t.RawSetString(key, size)
		}
	})
	return t
}
