// Package lexer splits raw console input into tokens.
//
// Tokens are separated by unquoted whitespace. Single and double quotes group
// any characters, including whitespace and the pipe character, into one token.
// A backslash escapes the next character literally, inside quotes too. An
// unquoted pipe becomes its own separator token, and an unquoted exclamation
// mark at the start of a stage's first word marks that word as an external
// program reference.
package lexer

import (
	"errors"
	"unicode"
)

// Kind discriminates the token types produced by the lexer.
type Kind int

const (
	// Word is a command name or argument.
	Word Kind = iota
	// Pipe is the stage separator "|".
	Pipe
)

var (
	// ErrUnterminatedQuote is returned when a quote is opened and never closed.
	ErrUnterminatedQuote = errors.New("unterminated quote")
	// ErrTrailingEscape is returned when the input ends in the middle of a
	// backslash escape.
	ErrTrailingEscape = errors.New("trailing escape")
)

// Token is one lexical unit of an input line.
//
// Text holds the literal content with quotes stripped and escapes resolved.
// Start and End are byte offsets into the source line covering the token's
// raw span, quote and marker characters included; completion uses them to
// compute replacement ranges.
type Token struct {
	Kind     Kind
	Text     string
	External bool
	Start    int
	End      int
}

// IsWord reports whether the token is a Word token.
func (t Token) IsWord() bool { return t.Kind == Word }

// Split tokenizes line strictly. It fails with ErrUnterminatedQuote or
// ErrTrailingEscape when the line ends inside a quote or escape.
func Split(line string) ([]Token, error) {
	toks, err := scan(line, false)
	if err != nil {
		return nil, err
	}
	return toks, nil
}

// SplitLenient tokenizes line for completion purposes. It never fails: an
// open quote or a trailing backslash yields the in-progress text as the
// final partial token instead of an error.
func SplitLenient(line string) []Token {
	toks, _ := scan(line, true)
	return toks
}

type quoteState int

const (
	unquoted quoteState = iota
	singleQuoted
	doubleQuoted
)

// scan is the single tokenizer behind Split and SplitLenient. When lenient
// is set, end-of-input inside a quote or escape flushes the partial token
// instead of failing.
func scan(line string, lenient bool) ([]Token, error) {
	var (
		tokens   []Token
		buf      []rune
		quote    = unquoted
		escaped  bool
		started  bool // a token is in progress, even if buf is empty ("" or bare !)
		external bool
		start    int
		// stageInitial is true at line start and after each pipe; only there
		// does a leading ! act as the external marker.
		stageInitial = true
	)

	begin := func(offset int) {
		if !started {
			started = true
			start = offset
		}
	}

	flush := func(end int) {
		if !started {
			return
		}
		tokens = append(tokens, Token{
			Kind:     Word,
			Text:     string(buf),
			External: external,
			Start:    start,
			End:      end,
		})
		buf = buf[:0]
		started = false
		external = false
		stageInitial = false
	}

	for i, r := range line {
		if escaped {
			begin(i - 1) // span covers the backslash
			buf = append(buf, r)
			escaped = false
			continue
		}

		switch {
		case r == '\\':
			escaped = true

		case quote == singleQuoted:
			if r == '\'' {
				quote = unquoted
			} else {
				buf = append(buf, r)
			}

		case quote == doubleQuoted:
			if r == '"' {
				quote = unquoted
			} else {
				buf = append(buf, r)
			}

		case r == '\'':
			begin(i)
			quote = singleQuoted

		case r == '"':
			begin(i)
			quote = doubleQuoted

		case r == '|':
			flush(i)
			tokens = append(tokens, Token{Kind: Pipe, Text: "|", Start: i, End: i + 1})
			stageInitial = true

		case unicode.IsSpace(r):
			flush(i)

		case r == '!' && !started && stageInitial:
			begin(i)
			external = true

		default:
			begin(i)
			buf = append(buf, r)
		}
	}

	if !lenient {
		if quote != unquoted {
			return nil, ErrUnterminatedQuote
		}
		if escaped {
			return nil, ErrTrailingEscape
		}
	}
	flush(len(line))

	return tokens, nil
}

// partialAt returns the index of the token whose span reaches the cursor,
// or -1 when the cursor sits on whitespace or right after a pipe (a fresh
// empty partial). Only the final token can qualify: every earlier span ends
// before it.
func partialAt(tokens []Token, cursor int) int {
	last := len(tokens) - 1
	if last < 0 || tokens[last].Kind != Word {
		return -1
	}
	if tokens[last].End < cursor {
		return -1
	}
	return last
}

// PartialToken locates the in-progress token for a completion request over
// line[:cursor]. It returns the lenient token stream, the index of the
// partial token within it, and the byte offset where the replacement span
// begins. When the cursor follows whitespace or a pipe, the partial is a
// fresh empty token: the returned index is len(tokens) and the span starts
// at the cursor.
func PartialToken(line string, cursor int) (tokens []Token, idx int, spanStart int) {
	if cursor > len(line) {
		cursor = len(line)
	}
	if cursor < 0 {
		cursor = 0
	}
	tokens = SplitLenient(line[:cursor])
	idx = partialAt(tokens, cursor)
	if idx < 0 {
		return tokens, len(tokens), cursor
	}
	t := tokens[idx]
	spanStart = t.Start
	if t.External {
		// the ! marker stays in place; candidates replace only the word
		spanStart++
	}
	return tokens, idx, spanStart
}
