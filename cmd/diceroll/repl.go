package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zephyrtronium/diceroll"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Roll dice interactively",
	Long: `Start an interactive session. Enter an expression to roll it, or
"name = expression" to define a variable. Commands:
  :vars      list variables
  :history   list recent results
  :quit      exit (also "quit" or "exit")`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().StringArrayP("given", "g", nil, "name=value variable definition; value may be any expression")
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	given, _ := cmd.Flags().GetStringArray("given")
	opts := parseOptions()
	vars, err := contextVars(given, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	s := newSession(out, diceroll.NewContext(diceroll.SetVars(vars)), opts, cfg.History)
	s.json = viper.GetBool("json")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	logger.Debug("repl started", zap.Int("history", cfg.History), zap.Int("vars", len(vars)))
	var last string
	for {
		line, err := ln.Prompt(cfg.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		// Consecutive duplicates are recalled once.
		if line != "" && line != last {
			ln.AppendHistory(line)
			last = line
		}
		if !s.handle(line) {
			return nil
		}
	}
}
