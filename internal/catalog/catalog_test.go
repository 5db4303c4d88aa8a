package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDataset(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	rs := c.Residences()
	require.Len(t, rs, 8)
	for i, r := range rs {
		assert.Equal(t, int64(i+1), r.ID, "catalog order")
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Image)
	}
	assert.Equal(t, "Luxury Penthouse Suite", rs[2].Title)
	assert.Equal(t, "Penthouse", rs[2].Type)
	assert.Equal(t, 1200000.0, rs[2].Price)

	// residence 8 is intentionally unassigned
	assert.Nil(t, rs[7].AgentID)
	require.NotNil(t, rs[2].AgentID)
	assert.Equal(t, int64(1), *rs[2].AgentID)

	assert.Len(t, c.Agents(), 4)
}

func TestResidences_ReturnsCopy(t *testing.T) {
	c := MustLoad()
	rs := c.Residences()
	rs[0].Title = "mutated"
	assert.Equal(t, "Modern Downtown Apartment", c.Residences()[0].Title)
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`[
	  {"id":1,"title":"A","price":1,"location":"l","city":"c","bedrooms":1,"bathrooms":1,"surfaceArea":1,"description":"d","image":"i","type":"House"},
	  {"id":1,"title":"B","price":1,"location":"l","city":"c","bedrooms":1,"bathrooms":1,"surfaceArea":1,"description":"d","image":"i","type":"House"}
	]`)
	_, err := parse(raw, []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate residence id 1")
}

func TestParse_RejectsSchemaViolation(t *testing.T) {
	// price as a string
	raw := []byte(`[{"id":1,"title":"A","price":"1","location":"l","city":"c","bedrooms":1,"bathrooms":1,"surfaceArea":1,"description":"d","image":"i","type":"House"}]`)
	_, err := parse(raw, []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParse_RejectsUnknownAssignment(t *testing.T) {
	raw := []byte(`[{"id":1,"title":"A","price":1,"location":"l","city":"c","bedrooms":1,"bathrooms":1,"surfaceArea":1,"description":"d","image":"i","type":"House"}]`)
	_, err := parse(raw, []byte(`[{"id":7,"name":"x","email":"x@y","residences":[2]}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown residence 2")
}
