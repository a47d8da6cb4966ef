// Package scripting provides a sandboxed GopherLua execution environment for
// level predicates. Scripts see a read-only snapshot of a level's metrics and
// cannot reach the filesystem, the process, or other levels.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the opcodes one predicate call may run when
// filter.instruction_limit is unset.
const DefaultInstructionLimit = 100_000

// countingContext spends one unit of budget each time the VM polls Done.
// GopherLua polls once per opcode when a context is set, so the budget is an
// opcode count. An exhausted budget cancels the context and the VM raises an
// error at the next opcode.
type countingContext struct {
	context.Context
	cancel context.CancelFunc
	budget *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.budget.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &countingContext{Context: ctx, cancel: cancel, budget: &atomic.Int64{}}
	c.budget.Store(int64(limit))
	return c, cancel
}

func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// limitInstructions installs a fresh instruction budget on L. Each script
// entry point gets its own budget so a long-lived state never starves.
//
// Postcondition: the returned cancel releases the budget's context.
func limitInstructions(L *lua.LState, instLimit int) context.CancelFunc {
	ctx, cancel := newCountingContext(effectiveLimit(instLimit))
	L.SetContext(ctx)
	return cancel
}

// NewSandboxedState returns a Lua state for untrusted level predicates. Only
// the base, table, string and math libraries are opened, the loader and GC
// globals of the base library are removed, and an instLimit opcode budget is
// installed.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState and the cancel func of its
// instruction budget. The caller owns the LState and must call cancel and
// L.Close() when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L, limitInstructions(L, instLimit)
}
