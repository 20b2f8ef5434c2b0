package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sophie-lund/forge/langtools/lex"
	"github.com/sophie-lund/forge/langtools/source"
	"github.com/sophie-lund/forge/langtools/token"
)

const (
	codeUnexpectedCharacter  = "unexpected-character"
	codeUnclosedBlockComment = "unclosed-block-comment"
	codeInvalidNumberLiteral = "invalid-number-literal"
)

// multiCharOperators is tried longest-first so "**=" is not mistakenly
// lexed as "**" followed by "=".
var multiCharOperators = []struct {
	text string
	kind *token.Kind
}{
	{"**=", KindStarStarAssign},
	{"<<=", KindShlAssign},
	{">>=", KindShrAssign},
	{"->", KindArrow},
	{"&&", KindAmpAmp},
	{"||", KindPipePipe},
	{"==", KindEq},
	{"!=", KindNe},
	{"<=", KindLe},
	{">=", KindGe},
	{"<<", KindShl},
	{">>", KindShr},
	{"+=", KindPlusAssign},
	{"-=", KindMinusAssign},
	{"*=", KindStarAssign},
	{"/=", KindSlashAssign},
	{"%=", KindPercentAssign},
	{"**", KindStarStar},
	{"&=", KindAmpAssign},
	{"|=", KindPipeAssign},
	{"^=", KindCaretAssign},
}

var singleCharOperators = map[string]*token.Kind{
	"(": KindLParen,
	")": KindRParen,
	"{": KindLBrace,
	"}": KindRBrace,
	",": KindComma,
	":": KindColon,
	";": KindSemi,
	"+": KindPlus,
	"-": KindMinus,
	"*": KindStar,
	"/": KindSlash,
	"%": KindPercent,
	"&": KindAmp,
	"|": KindPipe,
	"^": KindCaret,
	"!": KindBang,
	"~": KindTilde,
	".": KindDot,
	"=": KindAssign,
	"<": KindLt,
	">": KindGt,
}

// numberSuffixes are the type suffixes recognized on numeric literals.
var numberSuffixes = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
}

// Step is the langtools/lex.Step for Forge source. It recognizes
// identifiers, keywords, numeric literals, punctuation/operators, and
// comments, dropping whitespace and comments from the emitted stream.
func Step(ctx *lex.Context) {
	cluster, ok := ctx.Peek()
	if !ok {
		return
	}

	if isWhitespace(cluster) {
		ctx.Read()
		return
	}

	if cluster == "/" {
		if next, ok := ctx.PeekAt(1); ok && next == "/" {
			lexLineComment(ctx)
			return
		}
		if next, ok := ctx.PeekAt(1); ok && next == "*" {
			lexBlockComment(ctx)
			return
		}
	}

	if isIdentifierStart(cluster) {
		lexIdentifierOrKeyword(ctx)
		return
	}

	if isDigit(cluster) {
		lexNumber(ctx)
		return
	}

	for _, op := range multiCharOperators {
		if matchSequence(ctx, op.text) {
			return
		}
	}

	if kind, ok := singleCharOperators[cluster]; ok {
		start := ctx.CurrentLocation()
		ctx.Read()
		end := ctx.CurrentLocation()
		ctx.Emit(kind, source.Between(start, end), cluster)
		return
	}

	start := ctx.CurrentLocation()
	ctx.Read()
	end := ctx.CurrentLocation()
	ctx.Error(source.Between(start, end), codeUnexpectedCharacter, "unexpected character "+clusterQuoted(cluster))
}

func isWhitespace(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsSpace(r)
}

// isIdentifierStart reports whether cluster can begin an identifier: an
// underscore or anything unicode.IsLetter classifies as a letter.
func isIdentifierStart(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierContinue(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsDigit(r)
}

func lexIdentifierOrKeyword(ctx *lex.Context) {
	start := ctx.CurrentLocation()
	var sb strings.Builder

	for {
		cluster, ok := ctx.Peek()
		if !ok || !isIdentifierContinue(cluster) {
			break
		}
		ctx.Read()
		sb.WriteString(cluster)
	}

	text := sb.String()
	end := ctx.CurrentLocation()
	rng := source.Between(start, end)

	if kind, ok := keywords[text]; ok {
		ctx.Emit(kind, rng, text)
		return
	}
	ctx.Emit(KindIdentifier, rng, text)
}

func lexNumber(ctx *lex.Context) {
	start := ctx.CurrentLocation()
	var sb strings.Builder
	isFloat := false

	readDigits := func() {
		for {
			cluster, ok := ctx.Peek()
			if !ok || !isDigit(cluster) {
				break
			}
			ctx.Read()
			sb.WriteString(cluster)
		}
	}

	readDigits()

	if cluster, ok := ctx.Peek(); ok && cluster == "." {
		if next, ok := ctx.PeekAt(1); ok && isDigit(next) {
			isFloat = true
			ctx.Read()
			sb.WriteString(".")
			readDigits()
		}
	}

	var suffix string
	if cluster, ok := ctx.Peek(); ok && isIdentifierStart(cluster) {
		var suffixBuilder strings.Builder
		for {
			c, ok := ctx.Peek()
			if !ok || !isIdentifierContinue(c) {
				break
			}
			ctx.Read()
			suffixBuilder.WriteString(c)
		}
		suffix = suffixBuilder.String()
	}

	end := ctx.CurrentLocation()
	rng := source.Between(start, end)
	text := sb.String()

	if suffix != "" && !validSuffix(suffix) {
		ctx.Error(rng, codeInvalidNumberLiteral, "invalid number literal suffix "+clusterQuoted(suffix))
		return
	}

	if suffix != "" {
		text += suffix
	}

	if isFloat || isFloatSuffix(suffix) {
		ctx.Emit(KindFloatLiteral, rng, text)
	} else {
		ctx.Emit(KindIntegerLiteral, rng, text)
	}
}

func validSuffix(suffix string) bool {
	for _, s := range numberSuffixes {
		if s == suffix {
			return true
		}
	}
	return false
}

func isFloatSuffix(suffix string) bool {
	return suffix == "f32" || suffix == "f64"
}

func lexLineComment(ctx *lex.Context) {
	ctx.Read() // first "/"
	ctx.Read() // second "/"
	for {
		cluster, ok := ctx.Peek()
		if !ok || cluster == "\n" {
			break
		}
		ctx.Read()
	}
}

func lexBlockComment(ctx *lex.Context) {
	start := ctx.CurrentLocation()
	ctx.Read() // "/"
	ctx.Read() // "*"

	for {
		cluster, ok := ctx.Peek()
		if !ok {
			end := ctx.CurrentLocation()
			ctx.Error(source.Between(start, end), codeUnclosedBlockComment, "unclosed block comment")
			return
		}
		if cluster == "*" {
			if next, ok := ctx.PeekAt(1); ok && next == "/" {
				ctx.Read()
				ctx.Read()
				return
			}
		}
		ctx.Read()
	}
}

// matchSequence consumes and emits seq's operator kind if the upcoming
// clusters spell it out exactly; otherwise it consumes nothing.
func matchSequence(ctx *lex.Context, seq string) bool {
	runes := []rune(seq)
	for i, r := range runes {
		cluster, ok := ctx.PeekAt(i)
		if !ok || cluster != string(r) {
			return false
		}
	}

	start := ctx.CurrentLocation()
	for range runes {
		ctx.Read()
	}
	end := ctx.CurrentLocation()

	for _, op := range multiCharOperators {
		if op.text == seq {
			ctx.Emit(op.kind, source.Between(start, end), seq)
			return true
		}
	}
	return false
}

func clusterQuoted(s string) string {
	return "\"" + s + "\""
}
