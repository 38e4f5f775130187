// Package species holds the immutable species catalog and the moss habitats explored for them.
package species

import (
	"math"

	"github.com/pthm-cable/tardigrade/random"
)

// ID identifies a species. Valid ids are 1..Count.
type ID int

// Count is the number of species in the catalog.
const Count = 50

// Stats holds a species' base resistances.
type Stats struct {
	DryResistance  int
	ColdResistance int
	HeatResistance int
	Mobility       int
}

// Definition is one immutable catalog entry.
type Definition struct {
	ID               ID
	Name             string
	ScientificName   string
	Rarity           Rarity
	Stats            Stats
	DiscoveryWeight  float64
	CryptobiosisRate float64 // Revival success probability in [0.85, 0.98)
	Abilities        []Ability
	Description      string
	Color            string
	SizeMM           float64
}

// CanDefend reports whether individuals of this species may fill a defense slot.
func (d *Definition) CanDefend() bool {
	if d.Rarity.High() {
		return true
	}
	for _, a := range d.Abilities {
		if a.Predatory() {
			return true
		}
	}
	return false
}

type entry struct {
	name       string
	scientific string
	rarity     Rarity
}

var entries = [Count]entry{
	{"Lesser Water Bear", "Echiniscus granulatus", Common},
	{"Round Water Bear", "Echiniscus blumi", Common},
	{"Spiny Water Bear", "Echiniscus spiniger", Common},
	{"Moss Water Bear", "Bryodelphax parvulus", Common},
	{"Tiny Water Bear", "Milnesium minutum", Common},
	{"Yokozuna Water Bear", "Ramazzottius varieornatus", Uncommon},
	{"Twin-leaf Water Bear", "Diphascon bullatum", Uncommon},
	{"Green Water Bear", "Hypsibius dujardini", Uncommon},
	{"Grey Water Bear", "Macrobiotus hufelandi", Uncommon},
	{"Red Water Bear", "Ramazzottius oberhaeuseri", Uncommon},
	{"Desert Water Bear", "Xerobiotus pseudohufelandi", Uncommon},
	{"Armored Water Bear", "Richtersius coronifer", Uncommon},
	{"Horned Water Bear", "Cornechiniscus holmeni", Uncommon},
	{"Rock Water Bear", "Petrobiotus montanus", Uncommon},
	{"Yellow-snout Water Bear", "Flavobiotus basiatus", Uncommon},
	{"Aquatic Water Bear", "Thulinius aquaticus", Rare},
	{"Dujardin's Mountain Water Bear", "Hypsibius dujardini", Rare},
	{"Black Water Bear", "Mesobiotus niger", Rare},
	{"White Water Bear", "Albobiotus albus", Rare},
	{"Golden Water Bear", "Aurobiotus aureus", Rare},
	{"Snow Water Bear", "Cryobiotus arcticus", Rare},
	{"Glacier Water Bear", "Glacierobiotus frigidus", Rare},
	{"Alpine Water Bear", "Alpobiotus montanus", Rare},
	{"Ice Water Bear", "Cryoconicus glacialis", Rare},
	{"Snowflake Water Bear", "Nivobiotus nivalis", Rare},
	{"Glass Water Bear", "Vitreus transparens", Epic},
	{"Crystal Water Bear", "Crystallinus magnificus", Epic},
	{"Diamond Water Bear", "Diamanteus sparkles", Epic},
	{"Prism Water Bear", "Prismaticus rainbow", Epic},
	{"Aurora Water Bear", "Aurorabiotus borealis", Epic},
	{"Fire Water Bear", "Ignis flammeus", Epic},
	{"Titan Water Bear", "Gigantatardigrade titanicus", Epic},
	{"Atlas Water Bear", "Atlasium colossus", Epic},
	{"Hercules Water Bear", "Herculeus maximus", Epic},
	{"Zeus Water Bear", "Zeusium thunderbolt", Epic},
	{"Phoenix Water Bear", "Phoenixbiotus immortalis", Legendary},
	{"Dragon Water Bear", "Draconius legendarius", Legendary},
	{"Oni Water Bear", "Milnesium tardigradum", Legendary},
	{"Cannibal Water Bear", "Cannibalus predator", Legendary},
	{"Hunter Water Bear", "Predatorium hunter", Legendary},
	{"Ultimate Water Bear", "Ultimatum supremus", Legendary},
	{"Cosmic Water Bear", "Cosmicus universalis", Legendary},
	{"Eternal Water Bear", "Eternus infinite", Legendary},
	{"Celestial Water Bear", "Celestialis divine", Legendary},
	{"Miracle Water Bear", "Miraculum wonderous", Legendary},
	{"Artifact Water Bear", "Artifactum mysticus", Legendary},
	{"Relic Water Bear", "Reliquum ancientus", Legendary},
	{"Primordial Water Bear", "Primordialis genesis", Legendary},
	{"Transcendent Water Bear", "Transcendentis beyond", Legendary},
	{"Omni Water Bear", "Omnipotens absolute", Legendary},
}

// Catalog is the immutable species table.
type Catalog struct {
	defs []*Definition // index = id-1
}

// Build generates the catalog. Names and tiers are fixed; stats and cosmetics
// are drawn from src once, per entry, in declaration order.
func Build(src random.Source) *Catalog {
	c := &Catalog{defs: make([]*Definition, Count)}
	for i, e := range entries {
		c.defs[i] = generate(ID(i+1), e, src)
	}
	return c
}

func generate(id ID, e entry, src random.Source) *Definition {
	lo, hi := e.rarity.StatRange()
	stats := Stats{
		DryResistance:  random.IntRange(src, lo, hi),
		ColdResistance: random.IntRange(src, lo, hi),
		HeatResistance: random.IntRange(src, lo, hi),
		Mobility:       random.IntRange(src, lo, hi),
	}
	size := math.Round((src.Float64()*0.7+0.1)*100) / 100
	color := random.Pick(src, e.rarity.colorPool())
	ability := random.Pick(src, e.rarity.abilityPool())
	crypto := src.Float64()*0.13 + 0.85
	desc := random.Pick(src, e.rarity.descriptionPool())

	return &Definition{
		ID:               id,
		Name:             e.name,
		ScientificName:   e.scientific,
		Rarity:           e.rarity,
		Stats:            stats,
		DiscoveryWeight:  e.rarity.DiscoveryWeight(),
		CryptobiosisRate: crypto,
		Abilities:        []Ability{ability},
		Description:      desc,
		Color:            color,
		SizeMM:           size,
	}
}

// Get returns the definition for id.
func (c *Catalog) Get(id ID) (*Definition, bool) {
	if id < 1 || int(id) > len(c.defs) {
		return nil, false
	}
	return c.defs[id-1], true
}

// Len returns the number of species.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// IDs returns every species id in ascending order.
func (c *Catalog) IDs() []ID {
	ids := make([]ID, len(c.defs))
	for i, d := range c.defs {
		ids[i] = d.ID
	}
	return ids
}

// All returns every definition in id order.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// ByRarity returns the definitions of one tier in id order.
func (c *Catalog) ByRarity(r Rarity) []*Definition {
	var out []*Definition
	for _, d := range c.defs {
		if d.Rarity == r {
			out = append(out, d)
		}
	}
	return out
}

// HybridPool returns the ids of every Epic or Legendary species, ascending.
func (c *Catalog) HybridPool() []ID {
	var ids []ID
	for _, d := range c.defs {
		if d.Rarity.High() {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
