package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcli/internal/errors"
)

func TestDefaultCatalog_Valid(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Equal(t, 2180, c.TotalRegistrations())
	assert.Len(t, c.JobTitles, 12)
	assert.Len(t, c.Industries, 7)
	assert.Len(t, c.CompanySizes, 5)
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
	}{
		{"no events", func(c *Catalog) { c.Events = nil }},
		{"bad date", func(c *Catalog) { c.Events[0].Date = "15/03/2024" }},
		{"bad format", func(c *Catalog) { c.Events[0].Format = "Online" }},
		{"zero count", func(c *Catalog) { c.Events[1].Count = 0 }},
		{"inverted cost band", func(c *Catalog) { c.Channels[0].CostMin, c.Channels[0].CostMax = 9, 1 }},
		{"base rate above one", func(c *Catalog) { c.Channels[2].BaseRate = 1.2 }},
		{"zero share", func(c *Catalog) { c.Channels[3].Share = 0 }},
		{"empty job title", func(c *Catalog) { c.JobTitles[0] = "" }},
		{"duplicate event", func(c *Catalog) { c.Events[1].Name = c.Events[0].Name }},
		{"duplicate channel", func(c *Catalog) { c.Channels[1].Name = c.Channels[0].Name }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCatalog()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

			_, err = New(c, DefaultParams(), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		c, err := LoadCatalog("")
		require.NoError(t, err)
		assert.Equal(t, DefaultCatalog(), c)
	})

	t.Run("yaml override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
events:
  - name: Data Day
    type: Regional
    format: Virtual
    count: 25
    date: "2024-05-01"
channels:
  - name: Podcast
    share: 1
    base_rate: 0.5
    cost_min: 1
    cost_max: 4
job_titles: [Analyst]
industries: [Retail]
company_sizes: ["1-50"]
`), 0o644))

		c, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, c.Events, 1)
		assert.Equal(t, "Data Day", c.Events[0].Name)
		assert.Equal(t, 2024, c.Events[0].EventDate().Year())
		assert.Equal(t, 25, c.TotalRegistrations())
	})

	t.Run("unknown field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("venues: [a]\n"), 0o644))
		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
	})
}
