package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartject/smartject/internal/testutil"
)

func TestResolveSmartjectID(t *testing.T) {
	app, smartjects, _, _ := newTestApp(t)
	ctx := context.Background()

	sj := testutil.NewTestSmartject("Listing", testutil.WithRef("SJ-777"))
	require.NoError(t, smartjects.Create(ctx, sj))

	t.Run("by ref case-insensitive", func(t *testing.T) {
		id, err := resolveSmartjectID(ctx, app, "sj-777")
		require.NoError(t, err)
		assert.Equal(t, sj.ID, id)
	})

	t.Run("by UUID prefix", func(t *testing.T) {
		id, err := resolveSmartjectID(ctx, app, sj.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, sj.ID, id)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := resolveSmartjectID(ctx, app, "SJ-000")
		require.Error(t, err)
	})
}

func TestResolveMilestoneByPosition(t *testing.T) {
	app, smartjects, proposals, milestones := newTestApp(t)
	ctx := context.Background()

	sj := testutil.NewTestSmartject("Listing")
	require.NoError(t, smartjects.Create(ctx, sj))
	p := testutil.NewTestProposal(sj.ID, "Offer")
	require.NoError(t, proposals.Create(ctx, p))

	first := testutil.NewTestMilestone(p.ID, "Design", testutil.WithPercentage(40))
	require.NoError(t, milestones.Create(ctx, first))
	second := testutil.NewTestMilestone(p.ID, "Build", testutil.WithPercentage(60))
	second.OrderIndex = 1
	require.NoError(t, milestones.Create(ctx, second))

	id, err := resolveMilestoneID(ctx, app, p.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)

	_, err = resolveMilestoneID(ctx, app, p.ID, "3")
	require.Error(t, err)

	id, err = resolveMilestoneID(ctx, app, p.ID, first.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
}
