// Package plants holds the curated catalog of invasive plant species the
// service reports on.
package plants

// Severity is the invasiveness level shown to users, in Spanish.
type Severity string

const (
	SeverityLow     Severity = "Baja"
	SeverityMedium  Severity = "Media"
	SeverityHigh    Severity = "Alta"
	SeverityExtreme Severity = "Extrema"
)

// Plant describes one invasive species in the catalog.
type Plant struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	ScientificName     string   `json:"scientific_name"`
	Severity           Severity `json:"severity"`
	TaxonID            int      `json:"taxon_id,omitempty"` // iNaturalist taxon, 0 when unmapped
	Problem            string   `json:"problem"`
	AlternativeUses    []string `json:"alternative_uses,omitempty"`
	EliminationMethods []string `json:"elimination_methods,omitempty"`
}

// Catalog is an immutable set of plants, keyed by ID.
type Catalog struct {
	plants []Plant
	byID   map[string]*Plant
}

// NewCatalog builds a catalog from a plant list.
func NewCatalog(list []Plant) *Catalog {
	c := &Catalog{
		plants: list,
		byID:   make(map[string]*Plant, len(list)),
	}
	for i := range c.plants {
		c.byID[c.plants[i].ID] = &c.plants[i]
	}
	return c
}

// DefaultCatalog returns the built-in invasive species set for central Mexico.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultPlants)
}

// All returns every plant in the catalog.
func (c *Catalog) All() []Plant {
	return c.plants
}

// Get looks up a plant by ID.
func (c *Catalog) Get(id string) (*Plant, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// TaxonIDs returns the iNaturalist taxon IDs of every mapped plant, used as
// the default filter for nearby observation queries.
func (c *Catalog) TaxonIDs() []int {
	ids := make([]int, 0, len(c.plants))
	for i := range c.plants {
		if c.plants[i].TaxonID != 0 {
			ids = append(ids, c.plants[i].TaxonID)
		}
	}
	return ids
}

var defaultPlants = []Plant{
	{
		ID:             "lirio-acuatico",
		Name:           "Lirio acuático",
		ScientificName: "Eichhornia crassipes",
		Severity:       SeverityExtreme,
		TaxonID:        962637,
		Problem:        "Bloquea la luz del agua, reduce el oxígeno y afecta la fauna acuática.",
		AlternativeUses: []string{
			"Compostaje: rica en nitrógeno, puede convertirse en fertilizante.",
			"Filtro de agua: se ha usado en sistemas de tratamiento de aguas residuales.",
			"Artesanías: sus fibras pueden trenzarse para hacer canastos o alfombras.",
		},
		EliminationMethods: []string{
			"Retirarla manualmente del agua y dejarla secar completamente antes de desechar.",
			"No dejar fragmentos en el agua, ya que puede regenerarse rápidamente.",
		},
	},
	{
		ID:             "muerdago",
		Name:           "Muérdago",
		ScientificName: "Psittacanthus calyculatus",
		Severity:       SeverityMedium,
		TaxonID:        64017,
		Problem:        "Parásito que debilita árboles nativos y ornamentales, causando su muerte prematura.",
		AlternativeUses: []string{
			"Medicina tradicional: usado en algunas preparaciones herbales.",
			"Decoración: en algunas culturas se usa para decoración festiva.",
		},
		EliminationMethods: []string{
			"Podar la rama infectada al menos 30 cm por debajo del punto de infección.",
			"Quemar o sellar los restos para evitar propagación.",
			"Tratar el árbol con productos específicos para fortalecer su sistema.",
		},
	},
	{
		ID:             "cana-comun",
		Name:           "Caña común",
		ScientificName: "Arundo donax",
		Severity:       SeverityExtreme,
		Problem:        "Crece rápidamente en ríos y arroyos, desplazando especies nativas.",
		AlternativeUses: []string{
			"Construcción: material para cercas, techos y muebles rústicos.",
			"Instrumentos musicales: se usa para fabricar flautas y cañas de saxofón.",
			"Biomasa: se puede secar y usar como leña o material de compostaje.",
		},
		EliminationMethods: []string{
			"Cortar la planta lo más bajo posible y quitar los rizomas.",
			"Secar completamente antes de desechar.",
			"No quemar cerca de cuerpos de agua, ya que sus semillas pueden dispersarse.",
		},
	},
	{
		ID:             "castor-tartago",
		Name:           "Castor Tartágo",
		ScientificName: "Ricinus communis",
		Severity:       SeverityHigh,
		Problem:        "Es tóxica (sus semillas contienen ricina) y se propaga rápidamente.",
		AlternativeUses: []string{
			"Aceite de ricino (con precaución): usado en productos cosméticos e industriales.",
			"Repelente de plagas: sus hojas pueden usarse como barrera natural contra insectos.",
		},
		EliminationMethods: []string{
			"Extracción manual con guantes.",
			"Corte antes de la floración.",
			"Aplicación localizada de herbicidas.",
		},
	},
}
