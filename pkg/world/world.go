// Package world holds the narrative reference data: an immutable arena of
// scenes addressed by stable string keys. It is loaded once at process
// start and read-only thereafter; all sessions share one World.
package world

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"parley/pkg/domain"
)

//go:embed data/brinmere.yaml
var defaultWorld []byte

// World is the loaded scene graph.
type World struct {
	start  string
	scenes map[string]domain.Scene
}

type fileFormat struct {
	Start  string    `yaml:"start"`
	Scenes yaml.Node `yaml:"scenes"`
}

type sceneFormat struct {
	Title   string    `yaml:"title"`
	Desc    string    `yaml:"desc"`
	Choices yaml.Node `yaml:"choices"`
}

// Default returns the embedded adventure, "A Shadow over Brinmere".
func Default() *World {
	w, err := Load(bytes.NewReader(defaultWorld))
	if err != nil {
		// The embedded world is validated by tests; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("world: embedded data invalid: %v", err))
	}
	return w
}

// LoadFile reads a world definition from a YAML file.
func LoadFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open world file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a world definition. Choice order within each scene follows
// the document order so positional matching and rendering stay stable.
func Load(r io.Reader) (*World, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read world data: %w", err)
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse world data: %w", err)
	}
	if file.Start == "" {
		return nil, fmt.Errorf("world data missing start scene")
	}

	scenes := make(map[string]domain.Scene)
	// scenes is a YAML mapping: Content alternates key, value.
	for i := 0; i+1 < len(file.Scenes.Content); i += 2 {
		id := file.Scenes.Content[i].Value

		var sf sceneFormat
		if err := file.Scenes.Content[i+1].Decode(&sf); err != nil {
			return nil, fmt.Errorf("failed to parse scene %q: %w", id, err)
		}

		scene := domain.Scene{
			ID:      id,
			Title:   sf.Title,
			Desc:    sf.Desc,
			Choices: make(map[string]domain.Choice),
		}
		for j := 0; j+1 < len(sf.Choices.Content); j += 2 {
			cid := sf.Choices.Content[j].Value
			var choice domain.Choice
			if err := sf.Choices.Content[j+1].Decode(&choice); err != nil {
				return nil, fmt.Errorf("failed to parse choice %q of scene %q: %w", cid, id, err)
			}
			scene.Choices[cid] = choice
			scene.ChoiceOrder = append(scene.ChoiceOrder, cid)
		}
		scenes[id] = scene
	}

	if _, ok := scenes[file.Start]; !ok {
		return nil, fmt.Errorf("start scene %q not defined", file.Start)
	}

	return &World{start: file.Start, scenes: scenes}, nil
}

// Start returns the ID of the scene every session begins at.
func (w *World) Start() string {
	return w.start
}

// Scene looks up a scene by ID.
// Returns domain.ErrSceneNotFound when the ID is unknown.
func (w *World) Scene(id string) (domain.Scene, error) {
	s, ok := w.scenes[id]
	if !ok {
		return domain.Scene{}, domain.ErrSceneNotFound
	}
	return s, nil
}

// Scenes returns every scene keyed by ID. The map is shared; callers must
// treat it as read-only.
func (w *World) Scenes() map[string]domain.Scene {
	return w.scenes
}

// Has reports whether a scene exists.
func (w *World) Has(id string) bool {
	_, ok := w.scenes[id]
	return ok
}

// Len returns the number of scenes.
func (w *World) Len() int {
	return len(w.scenes)
}

// DanglingTargets lists choice targets that reference undefined scenes.
// Authors may point at scenes they have not written yet; the engine falls
// back to the start scene when a session lands on one, so this is a lint
// signal rather than a load error.
func (w *World) DanglingTargets() []string {
	var dangling []string
	seen := make(map[string]bool)
	for _, scene := range w.scenes {
		for _, id := range scene.OrderedChoices() {
			target := scene.Choices[id].ResultScene
			if target != "" && !w.Has(target) && !seen[target] {
				dangling = append(dangling, target)
				seen[target] = true
			}
		}
	}
	sort.Strings(dangling)
	return dangling
}
