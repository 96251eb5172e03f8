package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/diceroll"
	"github.com/zephyrtronium/diceroll/attack"
)

var attackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Roll a weapon attack and its damage",
	Example: `  diceroll attack --scores 16,12,14,10,10,8 --stat str --die 8 --type slashing
  diceroll attack --stat dex --die 6 --type piercing --adv --ac 15`,
	Args: cobra.NoArgs,
	RunE: runAttack,
}

func init() {
	f := attackCmd.Flags()
	f.String("scores", "10,10,10,10,10,10", "Ability scores STR,DEX,CON,INT,WIS,CHA")
	f.Int("pb", 2, "Proficiency bonus")
	f.String("stat", "str", "Ability used for attack and damage")
	f.IntSlice("die", []int{8}, "Sides of each damage die")
	f.String("type", "slashing", "Damage type")
	f.Int("magic", 0, "Magic bonus to attack and damage")
	f.Bool("adv", false, "Roll with advantage")
	f.Bool("dis", false, "Roll with disadvantage")
	f.Int("brutal", 0, "Extra base damage dice on a critical hit")
	f.Bool("not-proficient", false, "Omit the proficiency bonus")
	f.Int("ac", 0, "Also print the chance to hit this armor class")
	rootCmd.AddCommand(attackCmd)
}

func runAttack(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	scoresFlag, _ := f.GetString("scores")
	pb, _ := f.GetInt("pb")
	statFlag, _ := f.GetString("stat")
	sides, _ := f.GetIntSlice("die")
	typeFlag, _ := f.GetString("type")
	magic, _ := f.GetInt("magic")
	adv, _ := f.GetBool("adv")
	dis, _ := f.GetBool("dis")
	brutal, _ := f.GetInt("brutal")
	notProf, _ := f.GetBool("not-proficient")
	ac, _ := f.GetInt("ac")

	scores, err := parseScores(scoresFlag)
	if err != nil {
		return err
	}
	stat, ok := attack.ParseStat(statFlag)
	if !ok {
		return fmt.Errorf("unknown stat %q", statFlag)
	}
	typ, ok := attack.ParseDamageType(typeFlag)
	if !ok {
		return fmt.Errorf("unknown damage type %q", typeFlag)
	}
	dice := make([]attack.DamageDie, len(sides))
	for i, s := range sides {
		if s < 1 {
			return fmt.Errorf("damage die must have at least one side, not %d", s)
		}
		dice[i] = attack.DamageDie{Die: diceroll.Die(s), Type: typ}
	}
	a, err := attack.NewWeaponAttack(stat, dice, attack.WeaponOptions{MagicAttackBonus: magic, MagicDamageBonus: magic})
	if err != nil {
		return err
	}

	c := attack.Character{Scores: scores, Proficiency: pb}
	hit := attack.HitOptions{Advantage: adv, Disadvantage: dis, Mod: attack.ModOptions{NotProficient: notProf}}
	src := diceroll.DefaultSource
	atk := a.RollToHit(src, &c, hit)
	dmg := a.RollDamage(src, &c, attack.DamageOptions{Critical: atk.Critical(), BrutalCritical: brutal})
	logger.Debug("attack", zap.Int("attack", atk.Result), zap.Bool("critical", atk.Critical()), zap.Int("damage", dmg.Total))

	out := cmd.OutOrStdout()
	printAttack(out, atk)
	printDamage(out, dmg)
	if ac > 0 {
		p := attack.HitChance(a.AttackMod(&c, hit.Mod), ac, hit, 64)
		fmt.Fprintf(out, "hit chance vs AC %d: %s\n", ac, p.Text('f', 4))
	}
	return nil
}

// parseScores parses six comma-separated ability scores.
func parseScores(s string) (attack.Scores, error) {
	var scores attack.Scores
	parts := strings.Split(s, ",")
	if len(parts) != len(scores) {
		return scores, fmt.Errorf("need %d ability scores, got %d", len(scores), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return scores, fmt.Errorf("ability score %s: %w", attack.Stat(i), err)
		}
		scores[i] = v
	}
	return scores, nil
}

func printAttack(w io.Writer, r attack.AttackRoll) {
	rolls := make([]string, len(r.Rolls))
	for i, d := range r.Rolls {
		rolls[i] = strconv.Itoa(d.Result)
	}
	fmt.Fprintf(w, "attack: [%s] %+d = %d", strings.Join(rolls, " "), r.Modifier, r.Result)
	if r.Critical() {
		fmt.Fprint(w, " (critical)")
	}
	fmt.Fprintln(w)
}

func printDamage(w io.Writer, r attack.DamageResult) {
	rolls := make([]string, len(r.Rolls))
	for i, d := range r.Rolls {
		rolls[i] = fmt.Sprintf("%d/d%d", d.Result, d.Sides)
	}
	fmt.Fprintf(w, "damage: [%s] = %d\n", strings.Join(rolls, " "), r.Total)
	types := make([]string, 0, len(r.ByType))
	for t := range r.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %s %d\n", t, r.ByType[attack.DamageType(t)])
	}
}
