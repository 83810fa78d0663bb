package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecMapJSONPreservesInsertionOrder(t *testing.T) {
	specs := NewSpecMap().
		Set("Display", "6.8 inch").
		Set("RAM", "12GB").
		Set("Battery", "5000mAh")

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.Equal(t, `{"Display":"6.8 inch","RAM":"12GB","Battery":"5000mAh"}`, string(out))

	var decoded SpecMap
	require.NoError(t, json.Unmarshal(out, &decoded))
	keys := []string{}
	for pair := decoded.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"Display", "RAM", "Battery"}, keys)
}

func TestSpecMapZeroValueMarshalsAsEmptyObject(t *testing.T) {
	var specs SpecMap

	out, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestSpecMapSetOnZeroValue(t *testing.T) {
	var specs SpecMap

	specs = specs.Set("RAM", "8GB")

	value, ok := specs.Get("RAM")
	require.True(t, ok)
	assert.Equal(t, "8GB", value)
}

func TestSpecMapSetReplacesExistingKey(t *testing.T) {
	specs := NewSpecMap().Set("RAM", "8GB").Set("RAM", "12GB")

	value, ok := specs.Get("RAM")
	require.True(t, ok)
	assert.Equal(t, "12GB", value)
	assert.Equal(t, 1, specs.Len())
}

func TestSpecMapDatabaseRoundTrip(t *testing.T) {
	specs := NewSpecMap().Set("Storage", "256GB").Set("Color", "Titanium Gray")

	stored, err := specs.Value()
	require.NoError(t, err)
	require.IsType(t, "", stored)

	var loaded SpecMap
	require.NoError(t, loaded.Scan(stored))
	color, ok := loaded.Get("Color")
	require.True(t, ok)
	assert.Equal(t, "Titanium Gray", color)
	assert.Equal(t, 2, loaded.Len())
}

func TestSpecMapEmptyStoresNull(t *testing.T) {
	stored, err := NewSpecMap().Value()
	require.NoError(t, err)
	assert.Nil(t, stored)

	var loaded SpecMap
	require.NoError(t, loaded.Scan(nil))
	assert.Equal(t, 0, loaded.Len())
}
