package scryptparams

import (
	"fmt"
	"sort"
)

// Fixed parameter sets for callers that cannot afford a benchmark. Times measured Dec 2020 on an AMD Ryzen 7 3800X.
var (
	MinParameters = CostParameters{ //21ms
		LogN: 14,
		R:    1 << 2,
		P:    1,
	}
	RecommendedParameters = CostParameters{ //>300ms
		LogN: 16,
		R:    1 << 4,
		P:    1,
	}
	BetterParameters = CostParameters{ //>2s
		LogN: 18,
		R:    1 << 5,
		P:    1,
	}
	MaxParameters = CostParameters{ //>9s
		LogN: 19,
		R:    1 << 6,
		P:    1,
	}
)

var presets = map[string]CostParameters{
	"min":         MinParameters,
	"recommended": RecommendedParameters,
	"default":     RecommendedParameters,
	"better":      BetterParameters,
	"max":         MaxParameters,
}

func Preset(name string) (CostParameters, error) {
	if p, ok := presets[name]; ok {
		return p, nil
	}
	return CostParameters{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
