package species

// Rarity is one of five ordered tiers.
type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// Rarities lists every tier in ascending order.
var Rarities = []Rarity{Common, Uncommon, Rare, Epic, Legendary}

// String returns the tier's stable key.
func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Epic:
		return "epic"
	case Legendary:
		return "legendary"
	}
	return "unknown"
}

// ParseRarity resolves a tier key produced by String.
func ParseRarity(s string) (Rarity, bool) {
	for _, r := range Rarities {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// StatRange returns the [min, max) range for every base stat of the tier.
func (r Rarity) StatRange() (min, max int) {
	switch r {
	case Common:
		return 10, 30
	case Uncommon:
		return 25, 50
	case Rare:
		return 45, 70
	case Epic:
		return 65, 85
	case Legendary:
		return 80, 100
	}
	return 0, 0
}

// DiscoveryWeight is the tier's nominal discovery probability.
func (r Rarity) DiscoveryWeight() float64 {
	switch r {
	case Common:
		return 0.25
	case Uncommon:
		return 0.12
	case Rare:
		return 0.05
	case Epic:
		return 0.02
	case Legendary:
		return 0.005
	}
	return 0
}

// High reports whether the tier is Epic or Legendary.
func (r Rarity) High() bool {
	return r == Epic || r == Legendary
}

func (r Rarity) abilityPool() []Ability {
	switch r {
	case Common:
		return []Ability{BasicSurvival}
	case Uncommon:
		return []Ability{DesiccationTolerance, ColdTolerance, Swift}
	case Rare:
		return []Ability{ExtremeDesiccation, FreezeTolerance, Crystallization}
	case Epic:
		return []Ability{Invisibility, Gigantism, Fission, Regeneration}
	case Legendary:
		return []Ability{Predation, Cannibalism, Immortality, DimensionShift, TimeStop}
	}
	return nil
}

func (r Rarity) colorPool() []string {
	switch r {
	case Common:
		return []string{"transparent", "pale brown", "grey"}
	case Uncommon:
		return []string{"russet", "pale green", "bluish white"}
	case Rare:
		return []string{"deep green", "blue", "violet"}
	case Epic:
		return []string{"iridescent", "gold", "silver"}
	case Legendary:
		return []string{"blood red", "deep purple", "aureate", "cosmic"}
	}
	return nil
}

func (r Rarity) descriptionPool() []string {
	switch r {
	case Common:
		return []string{
			"A basic water bear found in everyday surroundings.",
			"A hardy species living in urban moss.",
			"Easy to keep and a good first companion.",
		}
	case Uncommon:
		return []string{
			"A capable water bear adapted to a specialised habitat.",
			"Excellent desiccation tolerance lets it survive harsh conditions.",
			"An intriguing species with a distinctive body plan.",
		}
	case Rare:
		return []string{
			"A precious species that is hard to find.",
			"A scarce water bear with striking colouration.",
			"A notable species with unusual abilities.",
		}
	case Epic:
		return []string{
			"An ultra-rare species with near-legendary abilities.",
			"A mysterious water bear with astonishing survival power.",
			"A phantom species that researchers whisper about.",
		}
	case Legendary:
		return []string{
			"A water bear so mysterious it appears in myths.",
			"The ultimate life form, beyond every limit.",
			"A miraculous water bear embodying the mysteries of the cosmos.",
		}
	}
	return nil
}
