package plan

import "context"

// inMemSource implements Source over a static plan map.
type inMemSource struct {
	plans map[Tier]Plan
}

// NewInMemSource returns a Source backed by a deep copy of the given plans.
// Copying prevents later mutation of the input map from leaking into the
// catalog.
func NewInMemSource(plans map[Tier]Plan) Source {
	return &inMemSource{plans: clonePlans(plans)}
}

// NewDefaultSource returns a Source with the shipped CandlePilots plans.
func NewDefaultSource() Source {
	return &inMemSource{plans: DefaultPlans()}
}

func (s *inMemSource) Load(_ context.Context) (map[Tier]Plan, error) {
	return clonePlans(s.plans), nil
}
