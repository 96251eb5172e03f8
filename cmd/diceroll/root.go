package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zephyrtronium/diceroll"
	"github.com/zephyrtronium/diceroll/internal/config"
)

var (
	cfg     config.Config
	cfgFile string
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "diceroll",
	Short: "Dice expression roller",
	Long: `diceroll evaluates dice expressions like "2d6 + 1d4r2 - 3" and shows
every die that was rolled, rerolled, kept, and dropped.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file with limits and predefined variables")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().Int("max-dice", 0, "Most dice one term may roll (0 = no limit; default from DICEROLL_MAX_DICE)")
	rootCmd.PersistentFlags().Int("max-sides", 0, "Most sides a die may have (0 = no limit; default from DICEROLL_MAX_SIDES)")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("max_dice", rootCmd.PersistentFlags().Lookup("max-dice"))
	_ = viper.BindPFlag("max_sides", rootCmd.PersistentFlags().Lookup("max-sides"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// initConfig loads settings from the environment and makes them the defaults
// under any flags given on the command line.
func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		config.Exitf("diceroll: %v", err)
	}
	viper.SetDefault("max_dice", cfg.MaxDice)
	viper.SetDefault("max_sides", cfg.MaxSides)
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		config.Exitf("diceroll: reading config: %v", err)
	}
}

func setupLogger(*cobra.Command, []string) error {
	if !viper.GetBool("verbose") {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l
	return nil
}

// contextVars evaluates the variables defined under "vars" in the config file
// followed by those given with --given, which take precedence.
func contextVars(given []string, opts diceroll.ParseOption) (map[string]int, error) {
	defs := make([]string, 0, len(given))
	file := viper.GetStringMapString("vars")
	names := make([]string, 0, len(file))
	for k := range file {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		defs = append(defs, k+"="+file[k])
	}
	return parseGiven(append(defs, given...), opts)
}

// parseOptions returns the dice limits selected by flags and environment.
func parseOptions() diceroll.ParseOption {
	return diceroll.ParsingPreset(
		diceroll.MaxDice(viper.GetInt("max_dice")),
		diceroll.MaxSides(viper.GetInt("max_sides")),
	)
}
