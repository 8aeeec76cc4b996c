package service

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestIDMapperAssignsFreshIDs(t *testing.T) {
    mapper := NewIDMapper()

    a := mapper.AssignID("source-a")
    b := mapper.AssignID("source-b")

    assert.NotEmpty(t, a)
    assert.NotEmpty(t, b)
    assert.NotEqual(t, a, b)
    assert.NotEqual(t, "source-a", a)
}

func TestIDMapperKeepsFirstReservation(t *testing.T) {
    mapper := NewIDMapper()

    first := mapper.AssignID("source")
    second := mapper.AssignID("source")

    assert.Equal(t, first, second)

    resolved, ok := mapper.GetNewID("source")
    require.True(t, ok)
    assert.Equal(t, first, resolved)
}

func TestIDMapperUnknownSource(t *testing.T) {
    mapper := NewIDMapper()

    _, ok := mapper.GetNewID("never-assigned")
    assert.False(t, ok)
}
