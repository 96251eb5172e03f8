package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zephyrtronium/diceroll"
)

var rollCmd = &cobra.Command{
	Use:   "roll [expression...]",
	Short: "Roll dice expressions",
	Long: `Roll each expression given as an argument, then each line of the input
file. With no arguments and no --in, expressions are read from stdin.`,
	Example: `  diceroll roll 4d6d1
  diceroll roll --given str=3 "1d20 + str"
  echo "2d20p1 + 5" | diceroll roll`,
	RunE: runRoll,
}

var errFailed = errors.New("some expressions failed to evaluate")

func init() {
	rollCmd.Flags().String("in", "", "Input file, one expression per line (- for stdin)")
	rollCmd.Flags().StringArrayP("given", "g", nil, "name=value variable definition; value may be any expression")
	rollCmd.Flags().Bool("echo", false, "Print each parsed expression before its result")
	rollCmd.Flags().IntP("times", "n", 1, "Evaluate each expression this many times")
	rootCmd.AddCommand(rollCmd)
}

func runRoll(cmd *cobra.Command, args []string) error {
	inname, _ := cmd.Flags().GetString("in")
	given, _ := cmd.Flags().GetStringArray("given")
	echo, _ := cmd.Flags().GetBool("echo")
	times, _ := cmd.Flags().GetInt("times")
	if times < 1 {
		return fmt.Errorf("--times must be at least 1, not %d", times)
	}

	opts := parseOptions()
	vars, err := contextVars(given, opts)
	if err != nil {
		return err
	}
	ctx := diceroll.NewContext(diceroll.SetVars(vars))

	srcs := append([]string(nil), args...)
	lines, err := readLines(cmd.InOrStdin(), inname, len(args) == 0)
	if err != nil {
		return err
	}
	srcs = append(srcs, lines...)

	exprs := make([]*diceroll.Expr, 0, len(srcs))
	for _, src := range srcs {
		e, err := diceroll.ParseString(src, opts)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", src, err)
		}
		logger.Debug("parsed", zap.String("src", src), zap.Stringer("expr", e), zap.Strings("vars", e.Vars()))
		exprs = append(exprs, e)
	}

	w := &printer{out: cmd.OutOrStdout(), json: viper.GetBool("json"), echo: echo}
	failed := false
	for _, e := range exprs {
		for i := 0; i < times; i++ {
			r, err := ctx.Eval(e)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				failed = true
				break
			}
			logger.Debug("evaluated", zap.String("id", r.ID), zap.Int("total", r.Total))
			if err := w.print(e, r); err != nil {
				return err
			}
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// parseGiven parses name=value definitions. Each value is itself evaluated as
// a dice expression in an empty context.
func parseGiven(given []string, opts diceroll.ParseOption) (map[string]int, error) {
	vars := make(map[string]int, len(given))
	for _, s := range given {
		nm, vl, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		nm, vl = strings.TrimSpace(nm), strings.TrimSpace(vl)
		if !isName(nm) {
			return nil, fmt.Errorf("invalid variable name %q", nm)
		}
		r, err := diceroll.NewContext().EvalString(vl, opts)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		vars[nm] = r.Total
	}
	return vars, nil
}

// isName reports whether s parses as a context reference.
func isName(s string) bool {
	t, err := diceroll.ParseToken(s)
	if err != nil {
		return false
	}
	_, ok := t.(diceroll.ContextRef)
	return ok
}

// readLines reads non-blank lines from the named file, or from stdin if the
// name is "-" or std is set and no name is given.
func readLines(stdin io.Reader, inname string, std bool) ([]string, error) {
	var r io.Reader
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	case inname == "-", std:
		r = stdin
	default:
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// printer writes results in text or JSON form.
type printer struct {
	out  io.Writer
	json bool
	echo bool
}

func (p *printer) print(e *diceroll.Expr, r *diceroll.Result) error {
	if p.json {
		return json.NewEncoder(p.out).Encode(r)
	}
	if p.echo {
		if _, err := fmt.Fprintf(p.out, "%v : ", e); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.out, r)
	return err
}
