// Package locale provides localized display names for species, rarities,
// abilities, habitats and experiments.
//
// Catalogs are embedded YAML files registered with golang.org/x/text/message.
// Keys with no translation fall back to the stable English names.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tardigrade/colony"
	"github.com/pthm-cable/tardigrade/species"
)

//go:embed locales/*.yaml
var embeddedFS embed.FS

var supportedTags = []language.Tag{
	language.English,
	language.Japanese,
}

var matcher = language.NewMatcher(supportedTags)

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register loads the embedded catalogs and registers them with the
// process-wide message catalog. It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		registerErr = RegisterFS(embeddedFS)
	})
	return registerErr
}

// RegisterFS loads locales/*.yaml from fsys and registers every message.
func RegisterFS(fsys fs.FS) error {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse catalog %s: %w", p, err)
		}
		want := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if file.Locale != want {
			return fmt.Errorf("catalog %s: locale %q must match file name %q", p, file.Locale, want)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", p, err)
		}
		for key, value := range file.Messages {
			if err := message.SetString(tag, key, value); err != nil {
				return fmt.Errorf("catalog %s: key %q: %w", p, key, err)
			}
		}
	}
	return nil
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Match returns the best supported tag for a user preference such as "ja" or
// "en-GB". Unparseable input yields English.
func Match(pref string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supportedTags[idx]
}

// Namer renders display names in one language.
type Namer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewNamer creates a namer for tag. Call Register first.
func NewNamer(tag language.Tag) *Namer {
	return &Namer{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the namer's language.
func (n *Namer) Tag() language.Tag {
	return n.tag
}

// lookup returns the translation for key, or fallback when none is registered.
func (n *Namer) lookup(key, fallback string) string {
	out := n.printer.Sprintf(key)
	if out == key {
		return fallback
	}
	return out
}

// Species returns the species' display name.
func (n *Namer) Species(def *species.Definition) string {
	return n.lookup(fmt.Sprintf("species.%d", def.ID), def.Name)
}

// Rarity returns the tier's display name.
func (n *Namer) Rarity(r species.Rarity) string {
	return n.lookup("rarity."+r.String(), r.String())
}

// Ability returns the ability's display name.
func (n *Namer) Ability(a species.Ability) string {
	return n.lookup("ability."+a.String(), a.String())
}

// Habitat returns the habitat's display name.
func (n *Namer) Habitat(id species.AreaID) string {
	return n.lookup("habitat."+string(id), string(id))
}

// Experiment returns the experiment type's display name.
func (n *Namer) Experiment(t colony.ExperimentType) string {
	return n.lookup("experiment."+t.String(), t.String())
}

// Sunlight returns the sunlight level's display name.
func (n *Namer) Sunlight(s colony.Sunlight) string {
	return n.lookup("sunlight."+s.String(), s.String())
}
