package config

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")

	parsed, err := uuid.FromString(id)
	require.NoError(t, err)
	require.Equal(t, byte(uuid.V4), parsed.Version())
	require.Equal(t, id, GetInstanceId())
}
