package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrarySetSeat(t *testing.T) {
	lib := sampleDeck().GenerateLibrary(UnsetID)

	lib.SetSeat(2)
	assert.Equal(t, 2, lib.OwnerSeatID)
	for _, c := range lib.Cards {
		assert.Equal(t, 2, c.OwnerSeatID)
	}
	assert.Equal(t, 3, lib.CountOwnedBy(2))
}

func TestLibraryActsAsZoneAndDeck(t *testing.T) {
	lib := sampleDeck().GenerateLibrary(1)

	// zone capability: identity events resolve against library cards
	lib.Cards[0].AssignInstanceID(101)
	require.NoError(t, lib.MatchInstanceToCard(101, 7))
	assert.Equal(t, 7, lib.Cards[0].CatalogID)

	err := lib.MatchInstanceToCard(101, 8)
	var conflict *IdentityConflictError
	require.ErrorAs(t, err, &conflict)

	// deck capability: listing and search still work
	min := lib.ToMinimal()
	assert.Equal(t, map[int]int{7: 2, 9: 1}, min.Cards)

	got, err := lib.FindOne(TextKey("shock"))
	require.NoError(t, err)
	assert.Equal(t, 9, got.CatalogID)
}

func TestLibraryRecoveryAssignsInstance(t *testing.T) {
	lib := sampleDeck().GenerateLibrary(1)

	// no instance ids assigned yet: catalog-id fallback picks the first copy
	require.NoError(t, lib.MatchInstanceToCard(300, 9))
	assert.Equal(t, 300, lib.Cards[2].InstanceID)
	assert.Equal(t, UnsetID, lib.Cards[0].InstanceID)
}
