package species

// AreaID identifies an explorable moss habitat.
type AreaID string

const (
	AreaUrban   AreaID = "urban"
	AreaForest  AreaID = "forest"
	AreaDesert  AreaID = "desert"
	AreaWetland AreaID = "wetland"
	AreaAlpine  AreaID = "alpine"
)

// Habitat is a moss patch with its own climate and species pool.
type Habitat struct {
	ID          AreaID
	Moss        string
	Humidity    float64
	Temperature float64
	Species     []ID
}

var habitats = []Habitat{
	{AreaUrban, "silver moss", 40, 25, []ID{1, 2, 3, 4, 5}},
	{AreaForest, "hypnum moss", 80, 18, []ID{6, 7, 8, 9, 10}},
	{AreaDesert, "sand moss", 20, 35, []ID{11, 12, 13, 14, 15}},
	{AreaWetland, "sphagnum moss", 95, 15, []ID{16, 17, 18, 19, 20}},
	{AreaAlpine, "snowbed moss", 70, 5, []ID{21, 22, 23, 24, 25}},
}

// Habitats returns every habitat in display order.
func Habitats() []Habitat {
	out := make([]Habitat, len(habitats))
	copy(out, habitats)
	return out
}

// LookupHabitat returns the habitat for id.
func LookupHabitat(id AreaID) (Habitat, bool) {
	for _, h := range habitats {
		if h.ID == id {
			return h, true
		}
	}
	return Habitat{}, false
}
