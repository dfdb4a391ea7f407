package runtime

import (
	"io"
	"os"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/symbol"
)

// Config controls evaluation bounds and where std writes to.
type Config struct {
	RecursionLimit int
	Stdout         io.Writer
	Stderr         io.Writer
}

const DefaultRecursionLimit = 10000

// Runtime evaluates programs. The root frame persists across Eval calls, so globals
// defined by one program are visible to the next one analyzed by the same analyzer.
// A Runtime is not safe for concurrent use.
type Runtime struct {
	config Config
	in     *symbol.Interner
	root   *frame
	std    *Dict
	depth  int
}

// frame holds the slots of one function activation.
type frame struct {
	slots  []Value
	parent *frame
	self   Value
}

func (f *frame) slot(s program.Slot) *Value {
	target := f
	for i := 0; i < s.Depth; i++ {
		target = target.parent
	}
	return &target.slots[s.Index]
}

// New constructs a Runtime with defaults filled in and std installed.
func New(in *symbol.Interner, cfg Config) *Runtime {
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = DefaultRecursionLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	r := &Runtime{config: cfg, in: in}
	r.std = newStd(r)
	r.root = &frame{slots: []Value{program.StdSlot: NewDict(r.std)}}
	return r
}

func (r *Runtime) Interner() *symbol.Interner { return r.in }

// RegisterNative adds fn to the std dict under name.
func (r *Runtime) RegisterNative(name string, fn NativeFunc) {
	r.std.SetString(name, NewFunction(NewNative(name, fn)))
}

// Eval runs prog in the root frame and returns the value of its last statement. The
// returned error, when non-nil, is always a *Panic.
func (r *Runtime) Eval(prog *program.Program) (Value, error) {
	if size := prog.Root.FrameSize; size > len(r.root.slots) {
		r.root.slots = append(r.root.slots, make([]Value, size-len(r.root.slots))...)
	}
	r.depth = 0

	value, _, err := r.execBlock(prog.Root.Body, r.root)
	if err != nil {
		return Value{}, err
	}
	return value, nil
}
