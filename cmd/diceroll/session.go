package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/zephyrtronium/diceroll"
)

// assignment matches "name = expression" lines.
var assignment = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)

// session is the state of an interactive roller.
type session struct {
	out  io.Writer
	ctx  *diceroll.Context
	opts diceroll.ParseOption
	json bool

	// history holds the most recent results, oldest first.
	history []*diceroll.Result
	limit   int
}

func newSession(out io.Writer, ctx *diceroll.Context, opts diceroll.ParseOption, limit int) *session {
	return &session{out: out, ctx: ctx, opts: opts, limit: limit}
}

// handle processes one input line. It returns false when the session ends.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":quit", ":q", ":exit", "quit", "exit":
		return false
	case ":vars":
		s.printVars()
		return true
	case ":history":
		for _, r := range s.history {
			fmt.Fprintln(s.out, r)
		}
		return true
	}
	if strings.HasPrefix(line, ":") {
		fmt.Fprintf(s.out, "unknown command %s\n", line)
		return true
	}

	if m := assignment.FindStringSubmatch(line); m != nil {
		if !isName(m[1]) {
			fmt.Fprintf(s.out, "invalid variable name %q\n", m[1])
			return true
		}
		r, err := s.ctx.EvalString(m[2], s.opts)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return true
		}
		s.ctx.Set(m[1], r.Total)
		s.record(r)
		fmt.Fprintf(s.out, "%s = %v\n", m[1], r)
		return true
	}

	r, err := s.ctx.EvalString(line, s.opts)
	if err != nil {
		logger.Debug("eval failed", zap.String("line", line), zap.Error(err))
		fmt.Fprintln(s.out, err)
		return true
	}
	s.record(r)
	if s.json {
		if err := json.NewEncoder(s.out).Encode(r); err != nil {
			fmt.Fprintln(s.out, err)
		}
		return true
	}
	fmt.Fprintln(s.out, r)
	return true
}

// record appends a result to the history, discarding the oldest beyond the
// limit. A limit of zero keeps nothing.
func (s *session) record(r *diceroll.Result) {
	if s.limit <= 0 {
		return
	}
	s.history = append(s.history, r)
	if len(s.history) > s.limit {
		s.history = append(s.history[:0], s.history[len(s.history)-s.limit:]...)
	}
}

func (s *session) printVars() {
	vars := s.ctx.Vars()
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(s.out, "%s = %d\n", k, vars[k])
	}
}
