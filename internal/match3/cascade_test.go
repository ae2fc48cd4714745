package match3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeStagesInOrder(t *testing.T) {
	b := FromRows([][]Tile{
		{tA, tA, tA},
		{tB, tC, tB},
		{tC, tB, tC},
	})
	rng := rand.New(rand.NewSource(3))

	c := NewCascade(b, 3, rng, FindAllMatches(b), DefaultMaxCascadeRounds)
	require.Equal(t, 1, c.Round())
	require.Equal(t, 10, c.RoundPoints())
	require.Equal(t, StageRemove, c.Next())

	step := c.Step()
	assert.Equal(t, StageRemove, step.Stage)
	assert.ElementsMatch(t, []Pos{P(0, 0), P(0, 1), P(0, 2)}, step.Cells)
	assert.Equal(t, 3, b.CountEmpty())

	step = c.Step()
	assert.Equal(t, StageGravity, step.Stage)
	assert.Empty(t, step.Falls, "top row vacancies have nothing above them")

	step = c.Step()
	assert.Equal(t, StageRefill, step.Stage)
	assert.Equal(t, []Pos{P(0, 0), P(0, 1), P(0, 2)}, step.Cells)
	assert.Zero(t, b.CountEmpty())

	require.Equal(t, StageRescan, c.Next())
	for !c.Done() {
		c.Step()
	}
	assert.False(t, HasMatch(b))
	assert.GreaterOrEqual(t, c.Total(), 10)
}

func TestCascadeRemovesSharedCellOnce(t *testing.T) {
	b := FromRows([][]Tile{
		{tB, tA, tC},
		{tA, tA, tA},
		{tC, tA, tB},
	})
	c := NewCascade(b, 3, rand.New(rand.NewSource(1)), FindAllMatches(b), 0)

	assert.Equal(t, 20, c.RoundPoints(), "crossing runs are scored separately")
	step := c.Step()
	assert.Len(t, step.Cells, 5)
}

func TestCascadeGravityMovesTilesDown(t *testing.T) {
	b := FromRows([][]Tile{
		{tB, tC, tB},
		{tA, tA, tA},
		{tC, tB, tC},
	})
	c := NewCascade(b, 3, rand.New(rand.NewSource(1)), FindAllMatches(b), 0)

	c.Step()
	step := c.Step()

	require.Equal(t, StageGravity, step.Stage)
	assert.Len(t, step.Falls, 3)
	assert.Equal(t, tB, b.Get(1, 0))
	assert.Equal(t, tC, b.Get(1, 1))
	assert.Equal(t, tB, b.Get(1, 2))
	assert.Equal(t, Empty, b.Get(0, 0))
}

func TestResolveTerminatesStable(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := Initialize(15, 15, 6, rng)
		initial := FindAllMatches(b)
		if len(initial) == 0 {
			continue
		}

		res := Resolve(b, 6, rng, initial, DefaultMaxCascadeRounds)

		require.False(t, res.Capped, "seed %d hit the round cap", seed)
		assert.Empty(t, FindAllMatches(b), "seed %d left matches", seed)
		assert.Zero(t, b.CountEmpty(), "seed %d left empties", seed)
		assert.GreaterOrEqual(t, res.Points, RoundPoints(initial))
		assert.GreaterOrEqual(t, res.Rounds, 1)
	}
}

func TestResolveNoMatches(t *testing.T) {
	b := FromRows([][]Tile{
		{tA, tB, tC},
		{tB, tC, tA},
		{tC, tA, tB},
	})
	before := b.Clone()

	res := Resolve(b, 3, rand.New(rand.NewSource(1)), nil, 0)

	assert.Zero(t, res.Points)
	assert.Zero(t, res.Rounds)
	assert.Empty(t, res.Steps)
	assert.True(t, before.Equal(b))
}

func TestResolveRoundCap(t *testing.T) {
	// One kind refills into matches forever; the cap must stop it.
	b := FromRows([][]Tile{
		{tA, tA, tA},
		{tA, tA, tA},
		{tA, tA, tA},
	})

	res := Resolve(b, 1, rand.New(rand.NewSource(1)), FindAllMatches(b), 5)

	assert.True(t, res.Capped)
	assert.Equal(t, 5, res.Rounds)
	assert.Equal(t, 5*60, res.Points)
	assert.Zero(t, b.CountEmpty())
}

func TestStepOnSettledCascadeIsNoop(t *testing.T) {
	b := FromRows([][]Tile{{tA, tB, tC}})
	c := NewCascade(b, 3, rand.New(rand.NewSource(1)), nil, 0)

	require.True(t, c.Done())
	step := c.Step()
	assert.Equal(t, StageIdle, step.Stage)
	assert.Equal(t, "0 1 2", b.String())
}
