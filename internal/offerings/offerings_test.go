package offerings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, c.Offerings)
	assert.Equal(t, "Sells Group", c.Company)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offerings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
company: Test Co
offerings:
  - name: Widget Tuning
    description: We tune widgets.
    ideal_for:
      - widget factories
    price_range: $10k-$50k
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Co", c.Company)
	require.Len(t, c.Offerings, 1)
	assert.Equal(t, "Widget Tuning", c.Offerings[0].Name)
	assert.Equal(t, []string{"widget factories"}, c.Offerings[0].IdealFor)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("company: X\n"), 0o600))
	_, err = Load(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no offerings")
}

func TestPromptBlock(t *testing.T) {
	c := &Catalog{
		Company: "Test Co",
		Offerings: []Offering{
			{Name: "A", Description: "Does A.", IdealFor: []string{"x", "y"}},
			{Name: "B", Description: "Does B."},
		},
	}
	block := c.PromptBlock()
	assert.Contains(t, block, "Test Co offerings:")
	assert.Contains(t, block, "- A: Does A. Ideal for: x; y.")
	assert.Contains(t, block, "- B: Does B.")
}

func TestNames(t *testing.T) {
	c := Default()
	names := c.Names()
	assert.Len(t, names, len(c.Offerings))
	assert.Contains(t, names, "AI Readiness Assessment")
}
