// Package lua runs site code snippets in a sandboxed gopher-lua state.
//
// One state lives for the whole site load, so snippets run later can see
// globals and shared values defined by earlier ones. Reset discards the state.
package lua

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.SnippetRunner = (*Runner)(nil)

// ModuleName is the global table exposed to snippets.
const ModuleName = "folio"

// SnippetError reports a snippet that failed to compile or run.
type SnippetError struct {
	Location string
	Err      error
}

func (e *SnippetError) Error() string {
	return fmt.Sprintf("code snippet %s: %v", e.Location, e.Err)
}

func (e *SnippetError) Unwrap() error {
	return e.Err
}

// Runner executes Lua snippets.
type Runner struct {
	mu      sync.Mutex
	L       *lua.LState
	shared  *lua.LTable
	current string
}

// NewRunner creates a runner with a fresh sandboxed state.
func NewRunner() *Runner {
	r := &Runner{}
	r.init()
	return r
}

func (r *Runner) init() {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// No file or chunk loading from snippets.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	r.L = L
	r.shared = L.NewTable()
	L.SetGlobal(ModuleName, L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"log": r.luaLog,
		"set": r.luaSet,
		"get": r.luaGet,
	}))
}

// Extensions returns the snippet file extension.
func (r *Runner) Extensions() []string {
	return []string{".lua"}
}

// Run compiles the snippet with its location as chunk name and executes it.
func (r *Runner) Run(ctx context.Context, snippet domain.CodeSnippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = snippet.Location
	defer func() { r.current = "" }()

	fn, err := r.L.Load(strings.NewReader(snippet.Source), snippet.Location)
	if err != nil {
		return &SnippetError{Location: snippet.Location, Err: err}
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	r.L.Push(fn)
	if err := r.L.PCall(0, 0, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &SnippetError{Location: snippet.Location, Err: ctxErr}
		}
		return &SnippetError{Location: snippet.Location, Err: err}
	}
	return nil
}

// Reset closes the state and starts a fresh one.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.L.Close()
	r.init()
	return nil
}

// Close releases the state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.L.Close()
}

// Values returns the shared values stored by folio.set, converted to Go.
func (r *Runner) Values() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]any)
	r.shared.ForEach(func(k, v lua.LValue) {
		out[k.String()] = toGo(v)
	})
	return out
}

func (r *Runner) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	logger.Info("[%s] %s", r.current, strings.Join(parts, " "))
	return 0
}

func (r *Runner) luaSet(L *lua.LState) int {
	key := L.CheckString(1)
	r.shared.RawSetString(key, L.Get(2))
	return 0
}

func (r *Runner) luaGet(L *lua.LState) int {
	key := L.CheckString(1)
	L.Push(r.shared.RawGetString(key))
	return 1
}

// toGo converts a Lua value. Tables with a non-empty array part become
// slices, other tables become string-keyed maps.
func toGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		if n := val.Len(); n > 0 {
			out := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, toGo(val.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		val.ForEach(func(k, item lua.LValue) {
			out[k.String()] = toGo(item)
		})
		return out
	default:
		if v == lua.LNil {
			return nil
		}
		return v.String()
	}
}
