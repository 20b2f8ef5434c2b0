package codegen

import (
	llvmir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/core"
)

func (l *lowerer) lowerArithmetic(op ast.BinaryOp, left, right value.Value, t ast.Type) value.Value {
	if typesys.IsFloat(t) {
		return l.lowerFloatArithmetic(op, left, right, t)
	}
	return l.lowerIntegerArithmetic(op, left, right, t)
}

func (l *lowerer) lowerFloatArithmetic(op ast.BinaryOp, left, right value.Value, t ast.Type) value.Value {
	switch op {
	case ast.BinaryAdd:
		return l.block.NewFAdd(left, right)
	case ast.BinarySub:
		return l.block.NewFSub(left, right)
	case ast.BinaryMul:
		return l.block.NewFMul(left, right)
	case ast.BinaryDiv:
		return l.block.NewFDiv(left, right)
	case ast.BinaryMod:
		return l.block.NewFRem(left, right)
	case ast.BinaryExp:
		return l.lowerFloatExp(left, right, t)
	default:
		core.Unreachable("unhandled float binary operator %v", op)
		return nil
	}
}

func (l *lowerer) lowerIntegerArithmetic(op ast.BinaryOp, left, right value.Value, t ast.Type) value.Value {
	signed, _ := typesys.IsIntegerSigned(t)

	switch op {
	case ast.BinaryAdd:
		return l.block.NewAdd(left, right)
	case ast.BinarySub:
		return l.block.NewSub(left, right)
	case ast.BinaryMul:
		return l.block.NewMul(left, right)
	case ast.BinaryDiv:
		if signed {
			return l.block.NewSDiv(left, right)
		}
		return l.block.NewUDiv(left, right)
	case ast.BinaryMod:
		if signed {
			return l.block.NewSRem(left, right)
		}
		return l.block.NewURem(left, right)
	case ast.BinaryExp:
		return l.lowerIntegerExp(left, right, t)
	case ast.BinaryBitAnd:
		return l.block.NewAnd(left, right)
	case ast.BinaryBitOr:
		return l.block.NewOr(left, right)
	case ast.BinaryBitXor:
		return l.block.NewXor(left, right)
	case ast.BinaryShl:
		return l.block.NewShl(left, right)
	case ast.BinaryShr:
		if signed {
			return l.block.NewAShr(left, right)
		}
		return l.block.NewLShr(left, right)
	default:
		core.Unreachable("unhandled integer binary operator %v", op)
		return nil
	}
}

func (l *lowerer) lowerComparison(op ast.BinaryOp, left, right value.Value, t ast.Type) value.Value {
	if typesys.IsFloat(t) {
		return l.block.NewFCmp(floatPredicate(op), left, right)
	}
	signed, _ := typesys.IsIntegerSigned(t)
	return l.block.NewICmp(intPredicate(op, signed), left, right)
}

func intPredicate(op ast.BinaryOp, signed bool) enum.IPred {
	switch op {
	case ast.BinaryEq:
		return enum.IPredEQ
	case ast.BinaryNe:
		return enum.IPredNE
	case ast.BinaryLt:
		if signed {
			return enum.IPredSLT
		}
		return enum.IPredULT
	case ast.BinaryLe:
		if signed {
			return enum.IPredSLE
		}
		return enum.IPredULE
	case ast.BinaryGt:
		if signed {
			return enum.IPredSGT
		}
		return enum.IPredUGT
	case ast.BinaryGe:
		if signed {
			return enum.IPredSGE
		}
		return enum.IPredUGE
	default:
		core.Unreachable("non-comparison operator %v reached intPredicate", op)
		return 0
	}
}

func floatPredicate(op ast.BinaryOp) enum.FPred {
	switch op {
	case ast.BinaryEq:
		return enum.FPredOEQ
	case ast.BinaryNe:
		return enum.FPredONE
	case ast.BinaryLt:
		return enum.FPredOLT
	case ast.BinaryLe:
		return enum.FPredOLE
	case ast.BinaryGt:
		return enum.FPredOGT
	case ast.BinaryGe:
		return enum.FPredOGE
	default:
		core.Unreachable("non-comparison operator %v reached floatPredicate", op)
		return 0
	}
}

// lowerFloatExp lowers `**` on floats to the matching `llvm.pow` intrinsic,
// declared lazily the first time it's needed.
func (l *lowerer) lowerFloatExp(left, right value.Value, t ast.Type) value.Value {
	width := mustBitWidth(t)
	name := "llvm.pow.f64"
	if width == 32 {
		name = "llvm.pow.f32"
	}
	fn := l.intrinsic(name, left.Type(), left.Type(), right.Type())
	return l.block.NewCall(fn, left, right)
}

// lowerIntegerExp lowers `**` on integers via exponentiation by repeated
// multiplication, built from basic blocks the same way lowerWhile builds a
// loop: there is no LLVM integer-power instruction or intrinsic to call
// into instead.
func (l *lowerer) lowerIntegerExp(base, exponent value.Value, t ast.Type) value.Value {
	intType := base.Type().(*types.IntType)
	signed, _ := typesys.IsIntegerSigned(t)

	resultSlot := l.fn.EntryBlock.NewAlloca(intType)
	counterSlot := l.fn.EntryBlock.NewAlloca(intType)
	l.block.NewStore(constant.NewInt(intType, 1), resultSlot)
	l.block.NewStore(constant.NewInt(intType, 0), counterSlot)

	condBlock := l.fn.Func.NewBlock(l.blockName("exp.cond"))
	bodyBlock := l.fn.Func.NewBlock(l.blockName("exp.body"))
	exitBlock := l.fn.Func.NewBlock(l.blockName("exp.exit"))

	l.block.NewBr(condBlock)

	l.block = condBlock
	counter := l.block.NewLoad(intType, counterSlot)
	var cmp value.Value
	if signed {
		cmp = l.block.NewICmp(enum.IPredSLT, counter, exponent)
	} else {
		cmp = l.block.NewICmp(enum.IPredULT, counter, exponent)
	}
	l.block.NewCondBr(cmp, bodyBlock, exitBlock)

	l.block = bodyBlock
	result := l.block.NewLoad(intType, resultSlot)
	l.block.NewStore(l.block.NewMul(result, base), resultSlot)
	nextCounter := l.block.NewAdd(l.block.NewLoad(intType, counterSlot), constant.NewInt(intType, 1))
	l.block.NewStore(nextCounter, counterSlot)
	l.block.NewBr(condBlock)

	l.block = exitBlock
	return l.block.NewLoad(intType, resultSlot)
}

// intrinsic declares (once, cached) an external function for name with the
// given signature -- used for LLVM intrinsics like llvm.pow.f64 that have
// no corresponding IR instruction.
func (l *lowerer) intrinsic(name string, retType types.Type, argTypes ...types.Type) value.Value {
	if fn, ok := l.intrinsics[name]; ok {
		return fn
	}

	params := make([]*llvmir.Param, len(argTypes))
	for i, t := range argTypes {
		params[i] = llvmir.NewParam("", t)
	}

	fn := l.cg.Module.NewFunc(name, retType, params...)
	l.intrinsics[name] = fn
	return fn
}
