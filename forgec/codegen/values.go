package codegen

import (
	"strconv"

	llvmir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/sophie-lund/forge/forgec/ast"
	"github.com/sophie-lund/forge/forgec/typesys"
	"github.com/sophie-lund/forge/langtools/core"
)

func (l *lowerer) lowerValue(v ast.Value) value.Value {
	switch n := v.(type) {
	case *ast.ValueLiteralBool:
		return boolConstant(n.Value)

	case *ast.ValueLiteralNumber:
		return l.lowerLiteralNumber(n)

	case *ast.ValueSymbol:
		return l.lowerSymbolValue(n)

	case *ast.ValueUnary:
		return l.lowerUnary(n)

	case *ast.ValueBinary:
		return l.lowerBinary(n)

	case *ast.ValueCall:
		return l.lowerCall(n)

	case *ast.ValueCast:
		return l.lowerCast(n)

	default:
		core.Unreachable("unhandled value node kind %T", v)
		return nil
	}
}

func boolConstant(b bool) *constant.Int {
	if b {
		return constant.NewInt(types.I1, 1)
	}
	return constant.NewInt(types.I1, 0)
}

func (l *lowerer) lowerLiteralNumber(n *ast.ValueLiteralNumber) value.Value {
	t := n.ValueType()
	llvmType := l.lowerType(t)

	if typesys.IsFloat(t) {
		f, err := strconv.ParseFloat(n.Text, 64)
		core.Assert(err == nil, "invalid float literal %q reached codegen: %v", n.Text, err)
		return constant.NewFloat(llvmType.(*types.FloatType), f)
	}

	core.Assert(typesys.IsInteger(t), "literal number resolved to non-numeric type %T", t)
	intType := llvmType.(*types.IntType)
	signed, _ := typesys.IsIntegerSigned(t)

	if signed {
		parsed, err := strconv.ParseInt(n.Text, 10, 64)
		core.Assert(err == nil, "invalid integer literal %q reached codegen: %v", n.Text, err)
		return constant.NewInt(intType, parsed)
	}

	parsed, err := strconv.ParseUint(n.Text, 10, 64)
	core.Assert(err == nil, "invalid integer literal %q reached codegen: %v", n.Text, err)
	return constant.NewInt(intType, int64(parsed))
}

func (l *lowerer) lowerGlobalInitializer(v ast.Value, t types.Type) constant.Constant {
	if v == nil {
		return constant.NewZeroInitializer(t)
	}

	switch n := v.(type) {
	case *ast.ValueLiteralBool:
		return boolConstant(n.Value)
	case *ast.ValueLiteralNumber:
		return l.lowerLiteralNumber(n).(constant.Constant)
	default:
		core.Unreachable("global variable initializer must be a literal constant, got %T", v)
		return nil
	}
}

func (l *lowerer) lowerSymbolValue(n *ast.ValueSymbol) value.Value {
	target, ok := n.ResolvedSymbol()
	core.Assert(ok, "unresolved symbol %q reached codegen", n.Name)
	variable, ok := target.(*ast.Variable)
	core.Assert(ok, "symbol %q used as a value did not resolve to a variable", n.Name)

	addr := l.addressOfVariable(variable)
	return l.block.NewLoad(l.lowerType(variable.VarType), addr)
}

// addressOfVariable returns the pointer backing variable's storage, whether
// it's a function-local stack slot or a module-level global.
func (l *lowerer) addressOfVariable(variable *ast.Variable) value.Value {
	if l.fn != nil {
		if slot, ok := l.fn.Slot(variable); ok {
			return slot
		}
	}
	if g, ok := l.globals[variable]; ok {
		return g
	}
	core.Unreachable("variable %q has neither a local slot nor a global binding in codegen", variable.Name)
	return nil
}

// addressOf computes the pointer an assignable value's write (or a
// `&`-of-it read) targets. v must satisfy sema.IsAssignable.
func (l *lowerer) addressOf(v ast.Value) value.Value {
	switch n := v.(type) {
	case *ast.ValueSymbol:
		target, ok := n.ResolvedSymbol()
		core.Assert(ok, "unresolved symbol %q reached codegen", n.Name)
		variable, ok := target.(*ast.Variable)
		core.Assert(ok, "symbol %q used as an assignment target did not resolve to a variable", n.Name)
		return l.addressOfVariable(variable)

	case *ast.ValueUnary:
		core.Assert(n.Op == ast.UnaryDeref, "addressOf called on a non-deref unary value (%v)", n.Op)
		return l.lowerValue(n.Operand)

	case *ast.ValueBinary:
		core.Assert(n.Op == ast.BinaryMemberAccess, "addressOf called on a non-member-access binary value (%v)", n.Op)
		return l.fieldAddress(n)

	default:
		core.Unreachable("addressOf called on a non-assignable value %T", v)
		return nil
	}
}

func (l *lowerer) fieldAddress(n *ast.ValueBinary) value.Value {
	base := l.addressOf(n.Left)
	field := n.Right.(*ast.ValueFieldName)

	structured := structuredTypeOf(n.Left.ValueType())
	index := -1
	for i, m := range structured.Members {
		if m.Name == field.Name {
			index = i
			break
		}
	}
	core.Assert(index >= 0, "field %q not found on structured type during codegen", field.Name)

	llvmStruct := l.lowerType(n.Left.ValueType())
	return l.block.NewGetElementPtr(
		llvmStruct, base,
		constant.NewInt(types.I32, 0),
		constant.NewInt(types.I32, int64(index)),
	)
}

func (l *lowerer) lowerUnary(n *ast.ValueUnary) value.Value {
	switch n.Op {
	case ast.UnaryGetAddr:
		return l.addressOf(n.Operand)

	case ast.UnaryDeref:
		operand := l.lowerValue(n.Operand)
		return l.block.NewLoad(l.lowerType(n.ValueType()), operand)

	case ast.UnaryBoolNot:
		operand := l.lowerValue(n.Operand)
		return l.block.NewXor(operand, constant.NewInt(types.I1, 1))

	case ast.UnaryBitNot:
		operand := l.lowerValue(n.Operand)
		allOnes := constant.NewInt(operand.Type().(*types.IntType), -1)
		return l.block.NewXor(operand, allOnes)

	case ast.UnaryPos:
		return l.lowerValue(n.Operand)

	case ast.UnaryNeg:
		operand := l.lowerValue(n.Operand)
		if typesys.IsFloat(n.ValueType()) {
			return l.block.NewFNeg(operand)
		}
		zero := constant.NewInt(operand.Type().(*types.IntType), 0)
		return l.block.NewSub(zero, operand)

	default:
		core.Unreachable("unhandled unary operator %v", n.Op)
		return nil
	}
}

func (l *lowerer) lowerBinary(n *ast.ValueBinary) value.Value {
	switch n.Op {
	case ast.BinaryMemberAccess:
		addr := l.fieldAddress(n)
		return l.block.NewLoad(l.lowerType(n.ValueType()), addr)

	case ast.BinaryAssign:
		addr := l.addressOf(n.Left)
		rhs := l.lowerValue(n.Right)
		l.block.NewStore(rhs, addr)
		return rhs

	case ast.BinaryBoolAnd:
		return l.lowerShortCircuit(n.Left, n.Right, true)

	case ast.BinaryBoolOr:
		return l.lowerShortCircuit(n.Left, n.Right, false)
	}

	core.Assert(!n.Op.IsCompoundAssignment(), "compound assignment %v reached codegen; type resolution should have desugared it", n.Op)

	left := l.lowerValue(n.Left)
	right := l.lowerValue(n.Right)
	operandType := n.Left.ValueType()

	if n.Op.IsComparison() {
		return l.lowerComparison(n.Op, left, right, operandType)
	}

	return l.lowerArithmetic(n.Op, left, right, operandType)
}

// lowerShortCircuit lowers `&&`/`||` with real branching rather than eager
// evaluation of both sides: shortOnTrue selects which way `left` shortcuts
// without evaluating `right` at all (true for `&&`, false for `||`).
func (l *lowerer) lowerShortCircuit(leftExpr, rightExpr ast.Value, shortOnTrue bool) value.Value {
	left := l.lowerValue(leftExpr)
	startBlock := l.block

	name := "and"
	if !shortOnTrue {
		name = "or"
	}
	rhsBlock := l.fn.Func.NewBlock(l.blockName(name + ".rhs"))
	mergeBlock := l.fn.Func.NewBlock(l.blockName(name + ".merge"))

	if shortOnTrue {
		startBlock.NewCondBr(left, rhsBlock, mergeBlock)
	} else {
		startBlock.NewCondBr(left, mergeBlock, rhsBlock)
	}

	l.block = rhsBlock
	right := l.lowerValue(rightExpr)
	rhsEndBlock := l.block
	rhsEndBlock.NewBr(mergeBlock)

	l.block = mergeBlock
	shortCircuitValue := constant.NewInt(types.I1, 0)
	if !shortOnTrue {
		shortCircuitValue = constant.NewInt(types.I1, 1)
	}

	return mergeBlock.NewPhi(
		llvmir.NewIncoming(shortCircuitValue, startBlock),
		llvmir.NewIncoming(right, rhsEndBlock),
	)
}
