package colony

import (
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/tardigrade/random"
	"github.com/pthm-cable/tardigrade/species"
)

// IndividualID identifies one individual. The zero value means "none".
type IndividualID uint64

// Individual is one owned tardigrade.
type Individual struct {
	ID        IndividualID
	SpeciesID species.ID
	Dormant   bool
	Nutrition float64 // 0..100
	Age       int     // days
}

// Active reports whether the individual is awake.
func (in *Individual) Active() bool {
	return !in.Dormant
}

// idGenerator derives ids from the generation time plus a random 16-bit tiebreak.
// Ids are forced strictly increasing so two individuals never share one.
type idGenerator struct {
	rng  *rand.Rand
	last IndividualID
}

func newIDGenerator(seed int64) *idGenerator {
	return &idGenerator{rng: random.New(seed)}
}

func (g *idGenerator) next(now time.Time) IndividualID {
	id := IndividualID(uint64(now.UnixMilli())<<16 | uint64(g.rng.IntN(1<<16)))
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
