// Package diceroll evaluates tabletop dice expressions.
//
// An expression is arithmetic over integers, named context values, and dice
// terms, e.g. "2d6 + 1d4r2 - 3" or "(4d6d1 + str) * 2". Dice terms are
// written NdS followed by any of the suffixes
//
//	rrN  reroll any die showing N or less until it shows more than N
//	rN   reroll a die showing N or less once
//	plN  keep the lowest N dice
//	pN   keep the highest N dice
//	dN   drop the lowest N dice
//
// Evaluating an expression produces both the total and a trace of every die
// rolled, rerolled, kept, and dropped, in the order the expression was
// written, so that a caller can redraw what was typed. Redundant nested
// parentheses around one subexpression are kept only once. Division
// rounds up: "5/2" is 3.
package diceroll
