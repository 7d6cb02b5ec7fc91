package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTable(t *testing.T) {
	setupHome(t)

	output, _, err := executeCommand(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, output, "VALUE")
	assert.Contains(t, output, "venom")
	assert.Contains(t, output, "Carbon Black")
	assert.Contains(t, output, "#1a1a1a")
}

func TestCatalogJSONListsSkinParts(t *testing.T) {
	setupHome(t)

	output, _, err := executeCommand(t, "catalog", "--json")
	require.NoError(t, err)

	var payload catalogJSONPayload
	require.NoError(t, json.Unmarshal([]byte(output), &payload))
	require.Equal(t, len(payload.Entries), payload.Count)

	var sawSkin, sawSolid bool
	for _, e := range payload.Entries {
		switch e.Kind {
		case "skin":
			sawSkin = true
			assert.Len(t, e.Parts, 1, e.Value)
			assert.EqualValues(t, "face", e.Parts[0])
		case "solid":
			sawSolid = true
			assert.Len(t, e.Parts, 7, e.Value)
		}
	}
	assert.True(t, sawSkin)
	assert.True(t, sawSolid)
}
