package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candlepilots/planguard/pkg/plan"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	for _, tier := range plan.AllTiers {
		parsed, err := plan.ParseTier(string(tier))
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}

	_, err := plan.ParseTier("platinum")
	assert.ErrorIs(t, err, plan.ErrUnknownTier)
}

func TestParseResource(t *testing.T) {
	t.Parallel()

	for _, res := range plan.AllResources {
		parsed, err := plan.ParseResource(string(res))
		require.NoError(t, err)
		assert.Equal(t, res, parsed)
	}

	_, err := plan.ParseResource("invoices")
	assert.ErrorIs(t, err, plan.ErrUnknownResource)
}

func TestParseFeature(t *testing.T) {
	t.Parallel()

	for _, f := range plan.AllFeatures {
		parsed, err := plan.ParseFeature(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := plan.ParseFeature("teleportation")
	assert.ErrorIs(t, err, plan.ErrUnknownFeature)
}

func TestLimit(t *testing.T) {
	t.Parallel()

	assert.True(t, plan.Unlimited.IsUnlimited())
	assert.False(t, plan.Limit(0).IsUnlimited())
	assert.True(t, plan.Limit(0).Valid())
	assert.True(t, plan.Unlimited.Valid())
	assert.False(t, plan.Limit(-2).Valid())
}

func TestCompare(t *testing.T) {
	t.Parallel()

	plans := plan.DefaultPlans()
	free := plans[plan.TierFree]
	starter := plans[plan.TierStarter]
	pro := plans[plan.TierPro]

	t.Run("upgrade free to starter", func(t *testing.T) {
		t.Parallel()

		cmp := plan.Compare(&free, &starter)
		require.NotNil(t, cmp)

		assert.Contains(t, cmp.NewFeatures, plan.FeatureAI)
		assert.Empty(t, cmp.LostFeatures)
		assert.Len(t, cmp.IncreasedLimits, 4)
		assert.False(t, cmp.HasLimitDecreases())
	})

	t.Run("downgrade pro to free", func(t *testing.T) {
		t.Parallel()

		cmp := plan.Compare(&pro, &free)
		require.NotNil(t, cmp)

		assert.Contains(t, cmp.LostFeatures, plan.FeatureAdvancedAnalytics)
		assert.True(t, cmp.HasLimitDecreases())

		// Leaving unlimited is a decrease even though -1 < 3 numerically.
		change, ok := cmp.DecreasedLimits[plan.ResourceRecipes]
		require.True(t, ok)
		assert.Equal(t, plan.Unlimited, change.From)
		assert.Equal(t, plan.Limit(3), change.To)
	})

	t.Run("entering unlimited is an increase", func(t *testing.T) {
		t.Parallel()

		cmp := plan.Compare(&starter, &pro)
		require.NotNil(t, cmp)

		change, ok := cmp.IncreasedLimits[plan.ResourceRecipes]
		require.True(t, ok)
		assert.Equal(t, plan.Unlimited, change.To)
	})

	t.Run("nil plans", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, plan.Compare(nil, &free))
		assert.Nil(t, plan.Compare(&free, nil))
	})
}
