//go:build !windows

package env

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemStoreOtherPlatforms(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	s := NewSystemStore()

	v, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin:/bin", v)

	assert.ErrorIs(t, s.WriteAll("/x"), errors.ErrUnsupported)
	assert.NoError(t, s.Broadcast())
}
