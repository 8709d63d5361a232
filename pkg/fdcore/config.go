package fdcore

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// VariableHeuristic selects which undecided variable a decision picks.
type VariableHeuristic int

const (
	HeuristicDomDeg VariableHeuristic = iota // domain size / degree, smallest first
	HeuristicDomSize
	HeuristicLex
)

// ValueHeuristic selects which value (or branch) a decision tries first.
type ValueHeuristic int

const (
	ValueAscending ValueHeuristic = iota
	ValueDescending
)

// SearchConfig configures one Model.Search run: heuristics, stop
// conditions, and restart policy. Shaped after the teacher's
// SolverConfig/DefaultSolverConfig pattern in fd.go (a plain struct with
// a constructor supplying defaults, not a builder chain).
type SearchConfig struct {
	VariableHeuristic VariableHeuristic
	ValueHeuristic    ValueHeuristic

	MaxNodes     int64         // 0 = unbounded
	MaxSolutions int64         // 0 = unbounded
	TimeLimit    time.Duration // 0 = unbounded

	Restart RestartPolicy // nil = never restart

	RandomSeed int64
}

// DefaultSearchConfig returns the solver's default search configuration:
// dom/deg variable ordering, ascending value order, no restart, no stop
// conditions beyond exhausting the tree.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		VariableHeuristic: HeuristicDomDeg,
		ValueHeuristic:    ValueAscending,
		RandomSeed:        42,
	}
}

// DecodeSearchConfig decodes a loosely typed source (e.g. CLI flags
// collected into a map, or a config file already parsed to
// map[string]interface{}) into a SearchConfig, defaults first. This is
// the one ambient concern the pack's zero-dependency teacher never
// covers; mapstructure is reused rather than hand-rolling reflection.
func DecodeSearchConfig(src map[string]interface{}) (*SearchConfig, error) {
	cfg := DefaultSearchConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, resourceErrorf("DecodeSearchConfig", "build decoder: %v", err)
	}
	if err := dec.Decode(src); err != nil {
		return nil, programmingErrorf("DecodeSearchConfig", "%v", err)
	}
	return cfg, nil
}
