package market

import (
	"testing"

	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCrud(t *testing.T) {
	e := newTestEngine(t)

	template, err := e.Catalog.Add(&models.AddTemplateReq{
		Name: "postgres", Category: "database", Version: "15.3",
		MinCpuCores: 2, MinRamGb: 4, MinStorageGb: 50,
		Ports: []int{5432},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, template.Id)

	updated, err := e.Catalog.Update(template.Id, &models.AddTemplateReq{
		Name: "postgres", Category: "database", Version: "16.0",
		MinCpuCores: 4, MinRamGb: 8, MinStorageGb: 100,
		Ports: []int{5432},
	})
	require.NoError(t, err)
	assert.Equal(t, "16.0", updated.Version)
	assert.Equal(t, 4, updated.MinCpuCores)

	assert.Len(t, e.Catalog.List(), 1)

	require.NoError(t, e.Catalog.Delete(template.Id))
	assert.Empty(t, e.Catalog.List())
	_, err = e.Catalog.Get(template.Id)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCatalogRejectsNegativeRequirements(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Catalog.Add(&models.AddTemplateReq{Name: "bad", MinRamGb: -1})
	assert.Error(t, err)
}

func TestCatalogUpdateUnknownTemplate(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Catalog.Update("missing", &models.AddTemplateReq{Name: "x"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, e.Catalog.Delete("missing"), ErrTemplateNotFound)
}
