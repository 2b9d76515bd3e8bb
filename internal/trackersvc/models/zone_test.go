package models

import (
	"io"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unknownGameCard() *GameCard {
	return &GameCard{
		Card:        Card{CatalogID: UnsetID},
		OwnerSeatID: UnsetID,
		InstanceID:  UnsetID,
	}
}

func TestZoneMatchInstanceToCard(t *testing.T) {
	t.Run("resolves an unknown card by instance id", func(t *testing.T) {
		z := NewZone("battlefield", 28, nil)
		c := unknownGameCard()
		c.InstanceID = 55
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(55, 1001))
		assert.Equal(t, 1001, c.CatalogID)
	})

	t.Run("re-claiming the same catalog id is fine", func(t *testing.T) {
		z := NewZone("battlefield", 28, nil)
		c := unknownGameCard()
		c.InstanceID = 55
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(55, 1001))
		require.NoError(t, z.MatchInstanceToCard(55, 1001))
		assert.Equal(t, 1001, c.CatalogID)
	})

	t.Run("conflicting catalog id is fatal", func(t *testing.T) {
		z := NewZone("battlefield", 28, nil)
		c := unknownGameCard()
		c.InstanceID = 55
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(55, 1001))

		err := z.MatchInstanceToCard(55, 1002)
		var conflict *IdentityConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 55, conflict.InstanceID)
		assert.Equal(t, 1002, conflict.ClaimedID)
		assert.Equal(t, 1001, conflict.ResolvedID)
		// the resolved identity is not overwritten
		assert.Equal(t, 1001, c.CatalogID)
	})

	t.Run("previous instance ids still resolve", func(t *testing.T) {
		z := NewZone("battlefield", 28, nil)
		c := unknownGameCard()
		c.InstanceID = 55
		c.AssignInstanceID(70)
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(55, 1001))
		assert.Equal(t, 1001, c.CatalogID)
	})

	t.Run("recovery path adopts the instance id and warns", func(t *testing.T) {
		logger := log.New()
		logger.SetOutput(io.Discard)
		hook := &captureHook{}
		logger.AddHook(hook)

		z := NewZone("battlefield", 28, logger)
		c := gameCard("Lightning Bolt", 1001, 1)
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(91, 1001))
		assert.Equal(t, 91, c.InstanceID)
		require.Len(t, hook.entries, 1)
		assert.Equal(t, log.WarnLevel, hook.entries[0].Level)
	})

	t.Run("recovery never steals an assigned instance id", func(t *testing.T) {
		z := NewZone("battlefield", 28, nil)
		c := gameCard("Lightning Bolt", 1001, 1)
		c.InstanceID = 42
		z.Cards = append(z.Cards, c)

		require.NoError(t, z.MatchInstanceToCard(91, 1001))
		assert.Equal(t, 42, c.InstanceID)
	})
}

// captureHook records emitted logrus entries for assertions.
type captureHook struct {
	entries []*log.Entry
}

func (h *captureHook) Levels() []log.Level { return log.AllLevels }

func (h *captureHook) Fire(e *log.Entry) error {
	h.entries = append(h.entries, e)
	return nil
}
