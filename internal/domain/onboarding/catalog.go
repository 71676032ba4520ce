package onboarding

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/venue-api/internal/domain/entity"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog catálogo de solo lectura de StepTemplate, en el orden de declaración.
type Catalog struct {
	entries []entity.StepTemplate
	byID    map[string]int
}

type catalogFile struct {
	Steps []catalogEntry `yaml:"steps"`
}

type catalogEntry struct {
	ID             string  `yaml:"id"`
	Title          string  `yaml:"title"`
	Type           string  `yaml:"type"`
	Category       string  `yaml:"category"`
	EstimatedHours float64 `yaml:"estimated_hours"`
	Description    string  `yaml:"description"`
}

// DefaultCatalog carga el catálogo embebido en el binario.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
}

// LoadCatalog parsea y valida un catálogo YAML: ids únicos, tipo y categoría
// válidos, horas positivas.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catálogo: parsear yaml: %w", err)
	}
	c := &Catalog{
		entries: make([]entity.StepTemplate, 0, len(f.Steps)),
		byID:    make(map[string]int, len(f.Steps)),
	}
	for i, e := range f.Steps {
		if e.ID == "" || e.Title == "" {
			return nil, fmt.Errorf("catálogo: entrada %d sin id o título", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catálogo: id duplicado %q", e.ID)
		}
		st := entity.StepTemplate{
			ID:             e.ID,
			Title:          e.Title,
			Type:           entity.StepType(e.Type),
			Category:       entity.StepCategory(e.Category),
			EstimatedHours: decimal.NewFromFloat(e.EstimatedHours).Round(2),
			Description:    e.Description,
		}
		if !st.Type.Valid() {
			return nil, fmt.Errorf("catálogo: %s: tipo inválido %q", e.ID, e.Type)
		}
		if !st.Category.Valid() {
			return nil, fmt.Errorf("catálogo: %s: categoría inválida %q", e.ID, e.Category)
		}
		if !st.EstimatedHours.IsPositive() {
			return nil, fmt.Errorf("catálogo: %s: estimated_hours debe ser positivo", e.ID)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, st)
	}
	return c, nil
}

// ListAvailable devuelve una copia de todas las entradas.
func (c *Catalog) ListAvailable() []entity.StepTemplate {
	out := make([]entity.StepTemplate, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get busca una entrada por id; false si no existe.
func (c *Catalog) Get(id string) (entity.StepTemplate, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.StepTemplate{}, false
	}
	return c.entries[i], true
}
