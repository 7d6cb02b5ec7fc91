package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbitlab/orbit/internal/catalog"
)

func TestSwatch(t *testing.T) {
	assert.Contains(t, Swatch(catalog.MustParse("#ff0000"), true), "██")
	assert.NotContains(t, Swatch(catalog.MustParse("#ff0000"), false), "██")
	assert.Contains(t, Swatch(catalog.MustParse("venom"), true), "VE")
	assert.Contains(t, Swatch(catalog.Value{}, true), "??")
}
