// Package console is a line-oriented driver for a game session. It parses
// typed commands, forwards them to the game and prints localized results.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/game"
	"github.com/pthm-cable/tardigrade/locale"
	"github.com/pthm-cable/tardigrade/species"
	"github.com/pthm-cable/tardigrade/systems"
)

// Console drives one game from text input.
type Console struct {
	game  *game.Game
	namer *locale.Namer
	out   io.Writer
}

// New creates a console writing to out.
func New(g *game.Game, namer *locale.Namer, out io.Writer) *Console {
	return &Console{game: g, namer: namer, out: out}
}

// Run reads commands from in until quit, EOF or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printf("> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := c.Execute(scanner.Text())
		switch {
		case err == nil:
		case IsUserError(err):
			c.printf("? %v\n", err)
		default:
			c.printf("! %v\n", err)
		}
		if quit {
			return nil
		}
		c.printf("> ")
	}
	return scanner.Err()
}

// Execute runs one input line. quit reports whether the session should end.
func (c *Console) Execute(line string) (quit bool, err error) {
	if strings.TrimSpace(line) == "" {
		return false, nil
	}
	cmd, err := ParseLine(line)
	if err != nil {
		return false, err
	}

	switch cmd.Verb {
	case "explore":
		return false, c.explore(cmd.Args[0])
	case "select":
		return false, c.withIndividual(cmd.Args[0], func(in colony.Individual) error {
			parents, err := c.game.SelectParent(in.ID)
			if err != nil {
				return err
			}
			c.printf("parents: %s / %s\n", c.label(parents[0]), c.label(parents[1]))
			return nil
		})
	case "breed":
		return false, c.breed()
	case "sleep", "wake":
		dormant := cmd.Verb == "sleep"
		return false, c.withIndividual(cmd.Args[0], func(in colony.Individual) error {
			res, err := c.game.SetDormant(in.ID, dormant)
			if err != nil {
				return err
			}
			c.printf("%s: %s\n", c.name(in.SpeciesID), res.Kind)
			return nil
		})
	case "sleepall":
		c.printf("%d individuals entered cryptobiosis\n", c.game.DormantAll())
	case "wakeall":
		res, err := c.game.ReviveAll()
		if err != nil {
			return false, err
		}
		c.printf("revived %d, lost %d\n", len(res.Revived), len(res.Lost))
	case "experiment":
		return false, c.experiment(cmd.Args[0], cmd.Args[1])
	case "release":
		return false, c.withIndividual(cmd.Args[0], func(in colony.Individual) error {
			if err := c.game.Release(in.ID); err != nil {
				return err
			}
			c.printf("released %s\n", c.name(in.SpeciesID))
			return nil
		})
	case "feed":
		return false, c.withIndividual(cmd.Args[0], func(in colony.Individual) error {
			n, err := c.game.Feed(in.ID)
			if err != nil {
				return err
			}
			c.printf("%s nutrition %.1f\n", c.name(in.SpeciesID), n)
			return nil
		})
	case "defend", "undefend":
		return false, c.defend(cmd.Verb == "defend", cmd.Args[0])
	case "wait":
		return false, c.wait(cmd.Args)
	case "status":
		c.status()
	case "collection":
		return false, c.collection(cmd.Args)
	case "help":
		for _, v := range verbs {
			c.printf("  %s\n", v.usage)
		}
	case "quit":
		return true, nil
	}
	return false, nil
}

func (c *Console) explore(arg string) error {
	area, err := parseArea(arg)
	if err != nil {
		return err
	}
	res, err := c.game.Explore(area)
	if err != nil {
		return err
	}
	if !res.Found() {
		c.printf("nothing found in %s\n", c.namer.Habitat(area))
		return nil
	}
	def, _ := c.game.Catalog().Get(res.SpeciesID)
	c.printf("found %s [%s]", c.namer.Species(def), c.namer.Rarity(def.Rarity))
	if res.IsNewSpecies() {
		c.printf(" NEW")
	}
	if !res.Added {
		c.printf(" (colony full)")
	}
	c.printf("\n")
	return nil
}

func (c *Console) breed() error {
	res, err := c.game.Breed()
	if err != nil {
		return err
	}
	if res.Kind == systems.BreedFailed {
		c.printf("breeding failed (chance %.0f%%), parents lost\n", res.Chance*100)
		return nil
	}
	c.printf("born: %s", c.name(res.Species))
	if res.Hybrid {
		c.printf(" (hybrid)")
	}
	c.printf("\n")
	return nil
}

func (c *Console) experiment(pos, kind string) error {
	typ, err := parseExperiment(kind)
	if err != nil {
		return err
	}
	return c.withIndividual(pos, func(in colony.Individual) error {
		res, err := c.game.Experiment(in.ID, typ)
		if err != nil {
			return err
		}
		c.printf("%s %s: stat %d vs %d, %s\n",
			c.name(in.SpeciesID), c.namer.Experiment(typ), res.Stat, res.Threshold, res.Kind)
		return nil
	})
}

func (c *Console) defend(assign bool, arg string) error {
	slot, err := parseIndex(arg)
	if err != nil {
		return err
	}
	if !assign {
		return c.game.ClearDefender(slot)
	}
	id, err := c.game.AssignDefender(slot)
	if err != nil {
		return err
	}
	c.printf("slot %d: %s\n", slot+1, c.label(id))
	return nil
}

func (c *Console) wait(args []string) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("ticks %q: %w", args[0], ErrUsage)
		}
		n = v
	}
	for _, a := range c.game.Advance(n) {
		c.printf("attack: power %d vs defense %d, %s, %d lost\n", a.Power, a.DefenseBonus, a.Kind, len(a.Casualties))
	}
	return nil
}

func (c *Console) status() {
	v := c.game.View()
	env := v.Environment
	c.printf("tick %d  humidity %.1f  temperature %.1f  sunlight %s  threat %.1f\n",
		v.Tick, env.Humidity, env.Temperature, c.namer.Sunlight(env.Sunlight), v.ThreatLevel)
	c.printf("next attack in %s\n", v.NextAttackAt.Sub(v.Now).Round(time.Second))
	for i, in := range v.Colony {
		state := "active"
		if in.Dormant {
			state = "dormant"
		}
		c.printf("%d. %-28s nutrition %5.1f  age %3d  %s\n", i+1, c.name(in.SpeciesID), in.Nutrition, in.Age, state)
	}
	for i, id := range v.Defense {
		c.printf("slot %d: %s\n", i+1, c.labelIn(v, id))
	}
}

// collection lists discovered species, or one tier with undiscovered
// entries shown as "???".
func (c *Console) collection(args []string) error {
	v := c.game.View()
	cat := c.game.Catalog()
	if len(args) == 0 {
		c.printf("discovered %d/%d\n", len(v.Discovered), cat.Len())
		for _, id := range v.Discovered {
			def, _ := cat.Get(id)
			c.printf("  #%02d %s [%s] %s\n", id, c.namer.Species(def), c.namer.Rarity(def.Rarity), c.namer.Ability(def.Abilities[0]))
		}
		return nil
	}

	r, ok := species.ParseRarity(strings.ToLower(args[0]))
	if !ok {
		return fmt.Errorf("rarity %q: %w", args[0], ErrUsage)
	}
	known := make(map[species.ID]bool, len(v.Discovered))
	for _, id := range v.Discovered {
		known[id] = true
	}
	tier := cat.ByRarity(r)
	found := 0
	for _, def := range tier {
		if !known[def.ID] {
			c.printf("  #%02d ???\n", def.ID)
			continue
		}
		found++
		c.printf("  #%02d %s %s\n", def.ID, c.namer.Species(def), c.namer.Ability(def.Abilities[0]))
	}
	c.printf("%s %d/%d\n", c.namer.Rarity(r), found, len(tier))
	return nil
}

// withIndividual resolves a 1-based roster position and calls fn with it.
func (c *Console) withIndividual(pos string, fn func(colony.Individual) error) error {
	i, err := parseIndex(pos)
	if err != nil {
		return err
	}
	in, ok := c.game.View().Individual(i)
	if !ok {
		return fmt.Errorf("no individual at position %s: %w", pos, colony.ErrNotFound)
	}
	return fn(in)
}

func (c *Console) name(id species.ID) string {
	def, ok := c.game.Catalog().Get(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return c.namer.Species(def)
}

func (c *Console) label(id colony.IndividualID) string {
	return c.labelIn(c.game.View(), id)
}

func (c *Console) labelIn(v game.View, id colony.IndividualID) string {
	if id == 0 {
		return "-"
	}
	for i, in := range v.Colony {
		if in.ID == id {
			return fmt.Sprintf("%d. %s", i+1, c.name(in.SpeciesID))
		}
	}
	return "-"
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// IsUserError reports whether err came from bad input rather than the engine.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrAmbiguous) || errors.Is(err, ErrUsage)
}
