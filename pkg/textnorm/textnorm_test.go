package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SakshamC12/fliprinventory/pkg/textnorm"
)

func TestSKU(t *testing.T) {
	assert.Equal(t, "AB-12", textnorm.SKU("  ab-12 "))
	assert.Equal(t, "CAFÉ-01", textnorm.SKU("café-01"))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Café Molido 500g", "cafe"))
	assert.True(t, textnorm.Contains("TORNILLO", "tornillo"))
	assert.True(t, textnorm.Contains("Azúcar", "AZU"))
	assert.False(t, textnorm.Contains("Harina", "arroz"))
}
