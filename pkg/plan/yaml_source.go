package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSource loads the plan table from a YAML file. The file holds a list
// of plan definitions; unknown and duplicate tiers are rejected here, the
// rest of the validation happens in NewCatalog.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading plans from the given file path.
// The expected document shape:
//
//	plans:
//	  - tier: free
//	    name: Free
//	    limits:
//	      recipes: 3
//	      orders: 10
//	      customers: 10
//	      products: 5
//	    features: []
//	    pricing:
//	      monthly: {amount: 0, currency: USD}
//	      yearly: {amount: 0, currency: USD}
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

type yamlDocument struct {
	Plans []Plan `yaml:"plans"`
}

func (s *yamlSource) Load(_ context.Context) (map[Tier]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[Tier]Plan, len(doc.Plans))
	for _, p := range doc.Plans {
		tier, err := ParseTier(string(p.Tier))
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadPlans, err)
		}
		if _, exists := plans[tier]; exists {
			return nil, errors.Join(ErrFailedToLoadPlans,
				fmt.Errorf("duplicate plan entry for tier %q", tier))
		}
		plans[tier] = p
	}
	return plans, nil
}
