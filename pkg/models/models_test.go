package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	var items []Announcement
	raw := `[{"id":1,"title":"A","status":"active"},{"id":"65f0c1","title":"B","status":"closed"},{"id":null,"title":"C"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	assert.Equal(t, ID("1"), items[0].ID)
	assert.Equal(t, ID("65f0c1"), items[1].ID)
	assert.Equal(t, ID(""), items[2].ID)
}

func TestIDRejectsObjects(t *testing.T) {
	var a Announcement
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &a))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, Announcement{Status: StatusActive}.IsActive())
	assert.True(t, Announcement{Status: StatusClosed}.IsClosed())
	assert.True(t, ValidStatus(StatusClosed))
	assert.False(t, ValidStatus("archived"))
}
