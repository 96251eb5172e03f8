package diceroll

import "strconv"

// EmptyExpressionError is an error indicating that an expression contained no
// tokens. It implements InputError.
type EmptyExpressionError struct{}

func (err *EmptyExpressionError) Error() string {
	return "no expression"
}

func (err *EmptyExpressionError) Pos() int {
	return 0
}

// TokenError is an error indicating a token that is not an operator, bracket,
// number, name, or dice term. It implements InputError.
type TokenError struct {
	// Col is the index of the token.
	Col int
	// Token is the text that could not be parsed.
	Token string
	// Err is the underlying conversion error, if any.
	Err error
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "could not parse token "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return err.Err
}

// RollSpecError is an error indicating dice notation that names an
// impossible roll. It implements InputError.
type RollSpecError struct {
	// Col is the index of the token.
	Col int
	// Token is the dice term.
	Token string
	// Reason describes what is wrong with the term.
	Reason string
}

func (err *RollSpecError) Error() string {
	return errpos(err.Col, "invalid dice "+strconv.Quote(err.Token)+": "+err.Reason)
}

func (err *RollSpecError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating that operands and operators did not
// alternate. It implements InputError.
type SyntaxError struct {
	// Col is the index of the unexpected token, or 0 at the end of input.
	Col int
	// Token is the unexpected token, or "" at the end of input.
	Token string
	// Expected is what the parser was looking for, "operand" or "operator".
	Expected string
}

func (err *SyntaxError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "expected "+err.Expected+" at end of expression")
	}
	return errpos(err.Col, "expected "+err.Expected+", got "+strconv.Quote(err.Token))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses. It implements
// InputError.
type BracketError struct {
	// Col is the index of the unmatched bracket.
	Col int
	// Right is true for a close bracket with no open bracket and false for an
	// open bracket that is never closed.
	Right bool
}

func (err *BracketError) Error() string {
	if err.Right {
		return errpos(err.Col, "close bracket ) with no open bracket")
	}
	return errpos(err.Col, "open bracket ( with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return "token " + strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based index of the token that caused the error, or 0
	// if the error is not attributable to a single token.
	Pos() int
}

var (
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*RollSpecError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
)
