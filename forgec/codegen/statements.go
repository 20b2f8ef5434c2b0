package codegen

import (
	llvmir "github.com/llir/llvm/ir"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/sema"
	"github.com/sophie-lund/forge/langtools/core"
)

func (l *lowerer) lowerBlock(b *ast.StatementBlock) {
	for _, s := range b.Statements {
		if l.block.Term != nil {
			// Unreachable code after a terminator; sema's control-flow
			// validation already warned about this, codegen just stops
			// emitting into a block that LLVM requires end with exactly
			// one terminator.
			break
		}
		l.lowerStatement(s)
	}
}

func (l *lowerer) lowerStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.StatementBasic:
		l.lowerBasicStatement(n)
	case *ast.StatementValue:
		l.lowerValueStatement(n)
	case *ast.StatementDeclaration:
		l.lowerLocalDeclaration(n.Inner)
	case *ast.StatementBlock:
		l.lowerBlock(n)
	case *ast.StatementIf:
		l.lowerIf(n)
	case *ast.StatementWhile:
		l.lowerWhile(n)
	case *ast.StatementReturn:
		l.lowerReturn(n)
	default:
		core.Unreachable("unhandled statement kind %T", s)
	}
}

func (l *lowerer) lowerValueStatement(n *ast.StatementValue) {
	if n.Inner != nil {
		l.lowerValue(n.Inner)
	}
}

func (l *lowerer) lowerBasicStatement(n *ast.StatementBasic) {
	switch n.BasicKind {
	case ast.BasicStatementReturnVoid:
		l.block.NewRet(nil)

	case ast.BasicStatementContinue:
		loop, ok := l.fn.CurrentLoop()
		core.Assert(ok, "continue reached codegen outside any loop")
		l.block.NewBr(loop.Cond)

	case ast.BasicStatementBreak:
		loop, ok := l.fn.CurrentLoop()
		core.Assert(ok, "break reached codegen outside any loop")
		l.block.NewBr(loop.Exit)

	default:
		core.Unreachable("unhandled basic statement kind %v", n.BasicKind)
	}
}

// lowerLocalDeclaration handles a declaration nested inside a function
// body. A Variable always gets a stack slot allocated in the function's
// entry block, regardless of how deep in the body it's textually declared,
// matching how every local's lifetime spans the whole function. A
// TypeAlias has no runtime representation and lowers to nothing.
func (l *lowerer) lowerLocalDeclaration(d ast.Declaration) {
	switch n := d.(type) {
	case *ast.Variable:
		slot := l.fn.EntryBlock.NewAlloca(l.lowerType(n.VarType))
		l.fn.DeclareSlot(n, slot)
		if n.Initializer != nil {
			l.block.NewStore(l.lowerValue(n.Initializer), slot)
		}

	case *ast.TypeAlias:
		// No runtime representation.

	default:
		core.Unreachable("unhandled local declaration kind %T", d)
	}
}

// lowerIf builds then/else/merge blocks, omitting the merge block when both
// arms terminate (so control never falls through an if where every path
// already returns/breaks/continues).
func (l *lowerer) lowerIf(n *ast.StatementIf) {
	cond := l.lowerValue(n.Condition)

	thenBlock := l.fn.Func.NewBlock(l.blockName("if.then"))

	var elseBlock *llvmir.Block
	if n.Else != nil {
		elseBlock = l.fn.Func.NewBlock(l.blockName("if.else"))
	}

	thenTerminates := sema.TerminatesBlockList(n.Then.Statements)
	elseTerminates := n.Else != nil && sema.TerminatesBlockList(n.Else.Statements)

	var mergeBlock *llvmir.Block
	if !(thenTerminates && elseTerminates) {
		mergeBlock = l.fn.Func.NewBlock(l.blockName("if.merge"))
	}

	if elseBlock != nil {
		l.block.NewCondBr(cond, thenBlock, elseBlock)
	} else {
		l.block.NewCondBr(cond, thenBlock, mergeBlock)
	}

	l.block = thenBlock
	l.lowerBlock(n.Then)
	if l.block.Term == nil {
		l.block.NewBr(mergeBlock)
	}

	if n.Else != nil {
		l.block = elseBlock
		l.lowerBlock(n.Else)
		if l.block.Term == nil {
			l.block.NewBr(mergeBlock)
		}
	}

	if mergeBlock != nil {
		l.block = mergeBlock
	}
}

// lowerWhile builds cond/body/exit blocks; `continue` branches to cond,
// `break` branches to exit.
func (l *lowerer) lowerWhile(n *ast.StatementWhile) {
	condBlock := l.fn.Func.NewBlock(l.blockName("while.cond"))
	bodyBlock := l.fn.Func.NewBlock(l.blockName("while.body"))
	exitBlock := l.fn.Func.NewBlock(l.blockName("while.exit"))

	l.block.NewBr(condBlock)

	l.block = condBlock
	cond := l.lowerValue(n.Condition)
	l.block.NewCondBr(cond, bodyBlock, exitBlock)

	l.fn.PushLoop(condBlock, exitBlock)
	l.block = bodyBlock
	l.lowerBlock(n.Body)
	if l.block.Term == nil {
		l.block.NewBr(condBlock)
	}
	l.fn.PopLoop()

	l.block = exitBlock
}

func (l *lowerer) lowerReturn(n *ast.StatementReturn) {
	if n.Inner == nil {
		l.block.NewRet(nil)
		return
	}
	l.block.NewRet(l.lowerValue(n.Inner))
}
