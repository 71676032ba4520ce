package onboarding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/venue-api/internal/domain/onboarding"
)

func TestDefaultCatalog_CargaEntradasValidas(t *testing.T) {
	cat, err := onboarding.DefaultCatalog()
	require.NoError(t, err)

	list := cat.ListAvailable()
	require.NotEmpty(t, list)
	for _, st := range list {
		assert.True(t, st.Type.Valid(), st.ID)
		assert.True(t, st.Category.Valid(), st.ID)
		assert.True(t, st.EstimatedHours.IsPositive(), st.ID)
	}

	_, ok := cat.Get("no-existe")
	assert.False(t, ok)
}

func TestListAvailable_DevuelveCopia(t *testing.T) {
	cat, err := onboarding.DefaultCatalog()
	require.NoError(t, err)

	list := cat.ListAvailable()
	list[0].Title = "modificado"
	assert.NotEqual(t, "modificado", cat.ListAvailable()[0].Title)
}

func TestLoadCatalog_Rechaza(t *testing.T) {
	cases := map[string]string{
		"id duplicado": `steps:
  - {id: a, title: A, type: task, category: admin, estimated_hours: 1}
  - {id: a, title: B, type: task, category: admin, estimated_hours: 1}`,
		"tipo inválido":    `steps: [{id: a, title: A, type: party, category: admin, estimated_hours: 1}]`,
		"categoría":        `steps: [{id: a, title: A, type: task, category: bar, estimated_hours: 1}]`,
		"horas no válidas": `steps: [{id: a, title: A, type: task, category: admin, estimated_hours: 0}]`,
		"yaml roto":        `steps: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := onboarding.LoadCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}
