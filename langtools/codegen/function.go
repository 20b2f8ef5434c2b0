package codegen

import "github.com/llir/llvm/ir"

// LoopTarget is the pair of blocks a `continue`/`break` inside a loop body
// needs to jump to: back to the condition check, or out past the loop
// entirely.
type LoopTarget struct {
	Cond *ir.Block
	Exit *ir.Block
}

// FunctionCodegenContext is per-function lowering state: which LLVM block
// each stack-allocated declaration lives behind, and the stack of enclosing
// loops so a `continue`/`break` statement can find its target without
// threading it through every statement-lowering call. Keys are `any` rather
// than a concrete AST type so this package stays independent of any
// particular front end's syntax tree -- forgec/codegen passes `*ast.
// Variable` pointers as keys, but another language built on langtools could
// pass whatever identifies its own declarations.
type FunctionCodegenContext struct {
	Func       *ir.Func
	EntryBlock *ir.Block

	slots       map[any]*ir.InstAlloca
	loopTargets []LoopTarget
}

// NewFunctionCodegenContext starts fresh per-function state. entry is the
// function's first block, where every stack slot is allocated regardless of
// where in the body the corresponding declaration textually appears.
func NewFunctionCodegenContext(fn *ir.Func, entry *ir.Block) *FunctionCodegenContext {
	return &FunctionCodegenContext{
		Func:       fn,
		EntryBlock: entry,
		slots:      make(map[any]*ir.InstAlloca),
	}
}

// DeclareSlot records the stack slot backing key (typically a declaration
// node).
func (f *FunctionCodegenContext) DeclareSlot(key any, slot *ir.InstAlloca) {
	f.slots[key] = slot
}

// Slot looks up the stack slot backing key.
func (f *FunctionCodegenContext) Slot(key any) (*ir.InstAlloca, bool) {
	slot, ok := f.slots[key]
	return slot, ok
}

// PushLoop enters a new innermost loop.
func (f *FunctionCodegenContext) PushLoop(cond, exit *ir.Block) {
	f.loopTargets = append(f.loopTargets, LoopTarget{Cond: cond, Exit: exit})
}

// PopLoop leaves the innermost loop.
func (f *FunctionCodegenContext) PopLoop() {
	f.loopTargets = f.loopTargets[:len(f.loopTargets)-1]
}

// CurrentLoop returns the innermost enclosing loop's targets, if any.
func (f *FunctionCodegenContext) CurrentLoop() (LoopTarget, bool) {
	if len(f.loopTargets) == 0 {
		return LoopTarget{}, false
	}
	return f.loopTargets[len(f.loopTargets)-1], true
}
