package diceroll

// ParseOption is an option for parsing tokens.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	maxdiceopt  int
	maxsidesopt int
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// maxDice is the largest number of dice a single term may roll, or 0 for
	// no limit.
	maxDice int
	// maxSides is the largest number of sides a die may have, or 0 for no
	// limit.
	maxSides int
}

// DefaultMaxDice is the limit on dice per term when no MaxDice option is
// given.
const DefaultMaxDice = 10000

func newParsectx(opts []ParseOption) *parsectx {
	p := parsectx{maxDice: DefaultMaxDice}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return &p
}

// MaxDice limits the number of dice any single term may roll. Terms that
// exceed the limit are rejected with a *RollSpecError. The default is
// DefaultMaxDice. Zero or negative n removes the limit.
func MaxDice(n int) ParseOption {
	return maxdiceopt(n)
}

func (o maxdiceopt) parseOption(p parsectx) parsectx {
	p.maxDice = max(int(o), 0)
	return p
}

// MaxSides limits the number of sides a die may have. Zero or negative n
// removes the limit.
func MaxSides(n int) ParseOption {
	return maxsidesopt(n)
}

func (o maxsidesopt) parseOption(p parsectx) parsectx {
	p.maxSides = max(int(o), 0)
	return p
}

// ParsingPreset bundles options so they can be passed around as one. Applying
// a preset replaces every option applied before it; options after it still
// take effect.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := newParsectx(opts)
	return p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	return *o
}
