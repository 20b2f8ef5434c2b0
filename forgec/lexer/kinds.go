// Package lexer is the Forge-specific lexer:
// a langtools/lex.Step that recognizes identifiers, numeric literals,
// keywords, punctuation/operators, and comments.
package lexer

import "github.com/sophie-lund/forge/langtools/token"

// Kinds are interned once at package init via token.NewKind.
var (
	KindIdentifier     = token.NewKind("identifier")
	KindIntegerLiteral = token.NewKind("integer-literal")
	KindFloatLiteral   = token.NewKind("float-literal")

	KindKeywordFunc      = token.NewKind("kw-func")
	KindKeywordLet       = token.NewKind("kw-let")
	KindKeywordConst     = token.NewKind("kw-const")
	KindKeywordIf        = token.NewKind("kw-if")
	KindKeywordElse      = token.NewKind("kw-else")
	KindKeywordWhile     = token.NewKind("kw-while")
	KindKeywordReturn    = token.NewKind("kw-return")
	KindKeywordContinue  = token.NewKind("kw-continue")
	KindKeywordBreak     = token.NewKind("kw-break")
	KindKeywordType      = token.NewKind("kw-type")
	KindKeywordStruct    = token.NewKind("kw-struct")
	KindKeywordNamespace = token.NewKind("kw-namespace")
	KindKeywordTrue      = token.NewKind("kw-true")
	KindKeywordFalse     = token.NewKind("kw-false")
	KindKeywordAs        = token.NewKind("kw-as")

	KindLParen = token.NewKind("(")
	KindRParen = token.NewKind(")")
	KindLBrace = token.NewKind("{")
	KindRBrace = token.NewKind("}")
	KindComma  = token.NewKind(",")
	KindColon  = token.NewKind(":")
	KindSemi   = token.NewKind(";")
	KindArrow  = token.NewKind("->")

	KindPlus     = token.NewKind("+")
	KindMinus    = token.NewKind("-")
	KindStar     = token.NewKind("*")
	KindSlash    = token.NewKind("/")
	KindPercent  = token.NewKind("%")
	KindStarStar = token.NewKind("**")

	KindAmpAmp   = token.NewKind("&&")
	KindPipePipe = token.NewKind("||")
	KindAmp      = token.NewKind("&")
	KindPipe     = token.NewKind("|")
	KindCaret    = token.NewKind("^")
	KindShl      = token.NewKind("<<")
	KindShr      = token.NewKind(">>")
	KindBang     = token.NewKind("!")
	KindTilde    = token.NewKind("~")
	KindDot      = token.NewKind(".")

	KindAssign         = token.NewKind("=")
	KindPlusAssign     = token.NewKind("+=")
	KindMinusAssign    = token.NewKind("-=")
	KindStarAssign     = token.NewKind("*=")
	KindSlashAssign    = token.NewKind("/=")
	KindPercentAssign  = token.NewKind("%=")
	KindStarStarAssign = token.NewKind("**=")
	KindAmpAssign      = token.NewKind("&=")
	KindPipeAssign     = token.NewKind("|=")
	KindCaretAssign    = token.NewKind("^=")
	KindShlAssign      = token.NewKind("<<=")
	KindShrAssign      = token.NewKind(">>=")

	KindEq = token.NewKind("==")
	KindNe = token.NewKind("!=")
	KindLt = token.NewKind("<")
	KindLe = token.NewKind("<=")
	KindGt = token.NewKind(">")
	KindGe = token.NewKind(">=")
)

// keywords maps keyword spellings to their token kinds.
var keywords = map[string]*token.Kind{
	"func":      KindKeywordFunc,
	"let":       KindKeywordLet,
	"const":     KindKeywordConst,
	"if":        KindKeywordIf,
	"else":      KindKeywordElse,
	"while":     KindKeywordWhile,
	"return":    KindKeywordReturn,
	"continue":  KindKeywordContinue,
	"break":     KindKeywordBreak,
	"type":      KindKeywordType,
	"struct":    KindKeywordStruct,
	"namespace": KindKeywordNamespace,
	"true":      KindKeywordTrue,
	"false":     KindKeywordFalse,
	"as":        KindKeywordAs,
}
