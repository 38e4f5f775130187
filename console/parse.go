package console

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
)

var (
	// ErrUnknownCommand is returned when no verb is close enough to the input.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAmbiguous is returned when two candidates are equally close.
	ErrAmbiguous = errors.New("ambiguous input")
	// ErrUsage is returned when a verb gets the wrong arguments.
	ErrUsage = errors.New("bad arguments")
)

// Command is one parsed input line.
type Command struct {
	Verb string
	Args []string
}

type verbDef struct {
	canonical string
	aliases   []string
	minArgs   int
	maxArgs   int
	usage     string
}

var verbs = []verbDef{
	{"explore", []string{"ex", "search"}, 1, 1, "explore <area>"},
	{"select", []string{"pick", "sel"}, 1, 1, "select <n>"},
	{"breed", []string{"mate"}, 0, 0, "breed"},
	{"sleep", []string{"dormant"}, 1, 1, "sleep <n>"},
	{"wake", []string{"revive"}, 1, 1, "wake <n>"},
	{"sleepall", []string{"dormantall"}, 0, 0, "sleepall"},
	{"wakeall", []string{"reviveall"}, 0, 0, "wakeall"},
	{"experiment", []string{"exp", "test"}, 2, 2, "experiment <n> <impact|heat|cold>"},
	{"release", []string{"free"}, 1, 1, "release <n>"},
	{"feed", nil, 1, 1, "feed <n>"},
	{"defend", []string{"guard"}, 1, 1, "defend <slot>"},
	{"undefend", []string{"unguard"}, 1, 1, "undefend <slot>"},
	{"wait", []string{"tick"}, 0, 1, "wait [ticks]"},
	{"status", []string{"look", "colony"}, 0, 0, "status"},
	{"collection", []string{"dex", "catalog"}, 0, 1, "collection [rarity]"},
	{"help", []string{"?"}, 0, 0, "help"},
	{"quit", []string{"exit", "q"}, 0, 0, "quit"},
}

func lookupVerb(canonical string) verbDef {
	for _, v := range verbs {
		if v.canonical == canonical {
			return v
		}
	}
	return verbDef{}
}

// ParseLine maps raw input to a command. Verbs tolerate small typos.
func ParseLine(raw string) (Command, error) {
	tokens := strings.Fields(normaliseInput(raw))
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("empty input: %w", ErrUnknownCommand)
	}

	names := make(map[string]string)
	for _, v := range verbs {
		names[v.canonical] = v.canonical
		for _, a := range v.aliases {
			names[a] = v.canonical
		}
	}
	candidates := make([]string, 0, len(names))
	for n := range names {
		candidates = append(candidates, n)
	}

	word, err := fuzzyMatch(tokens[0], candidates)
	if err != nil {
		return Command{}, fmt.Errorf("%q: %w", tokens[0], err)
	}
	def := lookupVerb(names[word])
	args := tokens[1:]
	if len(args) < def.minArgs || len(args) > def.maxArgs {
		return Command{}, fmt.Errorf("usage: %s: %w", def.usage, ErrUsage)
	}
	return Command{Verb: def.canonical, Args: args}, nil
}

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '?':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// fuzzyMatch returns the candidate closest to token within the typo limit.
// Exact matches and unique prefixes win outright.
func fuzzyMatch(token string, candidates []string) (string, error) {
	type scored struct {
		val  string
		dist int
	}
	var results []scored
	var prefixed []string
	for _, cand := range candidates {
		if token == cand {
			return cand, nil
		}
		if len(token) >= 3 && strings.HasPrefix(cand, token) {
			prefixed = append(prefixed, cand)
		}
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		results = append(results, scored{cand, dist})
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	if len(results) == 0 {
		return "", ErrUnknownCommand
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	if len(results) > 1 && results[0].dist == results[1].dist {
		return "", fmt.Errorf("%s or %s: %w", results[0].val, results[1].val, ErrAmbiguous)
	}
	return results[0].val, nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// parseArea resolves a habitat name with typo tolerance.
func parseArea(token string) (species.AreaID, error) {
	var names []string
	for _, h := range species.Habitats() {
		names = append(names, string(h.ID))
	}
	name, err := fuzzyMatch(token, names)
	if err != nil {
		return "", fmt.Errorf("area %q: %w", token, err)
	}
	return species.AreaID(name), nil
}

// parseExperiment resolves an experiment type with typo tolerance.
func parseExperiment(token string) (colony.ExperimentType, error) {
	var names []string
	for _, e := range colony.ExperimentTypes {
		names = append(names, e.String())
	}
	name, err := fuzzyMatch(token, names)
	if err != nil {
		return 0, fmt.Errorf("experiment %q: %w", token, err)
	}
	typ, _ := colony.ParseExperimentType(name)
	return typ, nil
}

// parseIndex reads a 1-based position and returns it 0-based.
func parseIndex(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position %q: %w", token, ErrUsage)
	}
	return n - 1, nil
}
