// Package codegen lowers a semantically-validated Forge syntax tree to LLVM
// IR via langtools/codegen's Context. Lower is only ever called once a
// messaging.Context has zero errors -- anything this package can't make
// sense of past that point is a programming error in an earlier pass, not a
// user-facing diagnostic, so it panics through core.Assert/core.Unreachable
// rather than returning an error.
package codegen

import (
	"fmt"

	llvmir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	langcodegen "github.com/sophie-lund/forge/langtools/codegen"
	"github.com/sophie-lund/forge/langtools/core"
)

// lowerer carries the state shared across an entire translation unit's
// lowering: the module being built, declaration-to-LLVM-value maps (so
// forward references and calls between declarations resolve regardless of
// source order, matching the unordered scope translation units and
// namespaces use), and the per-function state of whichever function is
// currently being lowered.
type lowerer struct {
	cg *langcodegen.Context

	structs map[*ast.StructuredType]*types.StructType
	funcs   map[*ast.Function]*llvmir.Func
	globals map[*ast.Variable]*llvmir.Global

	fn    *langcodegen.FunctionCodegenContext
	block *llvmir.Block

	blockCounter int
	intrinsics   map[string]*llvmir.Func
}

// Lower drives codegen for an entire translation unit into cg. unit must
// have already passed every forgec/sema pass with zero errors.
func Lower(unit *ast.TranslationUnit, cg *langcodegen.Context) {
	core.Assert(unit != nil, "codegen.Lower called with a nil translation unit")
	core.Assert(cg != nil, "codegen.Lower called with a nil context")

	l := &lowerer{
		cg:         cg,
		structs:    make(map[*ast.StructuredType]*types.StructType),
		funcs:      make(map[*ast.Function]*llvmir.Func),
		globals:    make(map[*ast.Variable]*llvmir.Global),
		intrinsics: make(map[string]*llvmir.Func),
	}

	// Three passes over the declaration tree: struct layouts first (field
	// types may reference other structs), then every function's signature
	// and every global's storage (so calls and global reads inside a
	// function body resolve no matter which order declarations appear in),
	// then function bodies last.
	l.declareStructs(unit.Declarations)
	l.declareFunctions(unit.Declarations)
	l.declareGlobals(unit.Declarations)
	l.defineFunctions(unit.Declarations)
}

func (l *lowerer) declareStructs(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.StructuredType:
			l.declareStruct(n)
		case *ast.Namespace:
			l.declareStructs(n.Members)
		}
	}
}

func (l *lowerer) declareFunctions(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.Function:
			l.declareFunction(n)
		case *ast.Namespace:
			l.declareFunctions(n.Members)
		}
	}
}

func (l *lowerer) declareGlobals(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.Variable:
			l.declareGlobal(n)
		case *ast.Namespace:
			l.declareGlobals(n.Members)
		}
	}
}

func (l *lowerer) defineFunctions(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.Function:
			l.defineFunction(n)
		case *ast.Namespace:
			l.defineFunctions(n.Members)
		}
	}
}

func (l *lowerer) declareStruct(n *ast.StructuredType) {
	fieldTypes := make([]types.Type, len(n.Fields.Members))
	for i, m := range n.Fields.Members {
		fieldTypes[i] = l.lowerType(m.VarType)
	}

	st := types.NewStruct(fieldTypes...)
	st.TypeName = n.Name
	l.cg.Module.NewTypeDef(n.Name, st)
	l.structs[n] = st
}

func (l *lowerer) declareFunction(n *ast.Function) {
	retType := l.lowerType(n.ReturnType)

	params := make([]*llvmir.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = llvmir.NewParam(p.Name, l.lowerType(p.VarType))
	}

	l.funcs[n] = l.cg.Module.NewFunc(n.Name, retType, params...)
}

func (l *lowerer) declareGlobal(n *ast.Variable) {
	llvmType := l.lowerType(n.VarType)
	g := l.cg.Module.NewGlobalDef(n.Name, l.lowerGlobalInitializer(n.Initializer, llvmType))
	g.Immutable = n.DeclaredConst
	l.globals[n] = g
}

// defineFunction emits a function's body. n.Body == nil means a forward
// declaration with no definition to emit -- its signature is already in the
// module from declareFunction, which is all a caller needs to link against
// or call into via the JIT.
func (l *lowerer) defineFunction(n *ast.Function) {
	if n.Body == nil {
		return
	}

	fn := l.funcs[n]
	entry := fn.NewBlock(l.blockName("entry"))

	prevFn, prevBlock, prevCounter := l.fn, l.block, l.blockCounter
	l.fn = langcodegen.NewFunctionCodegenContext(fn, entry)
	l.block = entry
	l.blockCounter = 0

	for i, p := range n.Params {
		slot := entry.NewAlloca(l.lowerType(p.VarType))
		entry.NewStore(fn.Params[i], slot)
		l.fn.DeclareSlot(p, slot)
	}

	l.lowerBlock(n.Body)

	if l.block.Term == nil {
		core.Assert(
			isVoidReturn(n),
			"function %q fell off the end of its body without a terminator even though its return type is non-void; control-flow validation should have rejected this before codegen",
			n.Name,
		)
		l.block.NewRet(nil)
	}

	l.fn, l.block, l.blockCounter = prevFn, prevBlock, prevCounter
}

// blockName produces a readable, unique-within-the-current-function block
// label; llir/llvm also auto-numbers unnamed blocks, but named ones make the
// emitted IR far easier to read while debugging codegen.
func (l *lowerer) blockName(prefix string) string {
	l.blockCounter++
	return fmt.Sprintf("%s.%d", prefix, l.blockCounter)
}

func isVoidReturn(n *ast.Function) bool {
	return n.ReturnType == nil || typesys.IsVoid(n.ReturnType)
}
