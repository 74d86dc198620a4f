// Package profile defines the operator's hiring profile and the
// classification of job-posting text against it.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Profile is the operator configuration a message is scored against.
// It is loaded on demand from a named JSON file and replaced
// wholesale when the operator switches profiles; never partially
// mutated.
type Profile struct {
	Title      string   `json:"title"`
	Must       Must     `json:"must"`
	RelatedAny []string `json:"related_any"`
	NiceToHave []string `json:"nice_to_have"`
	Ban        []string `json:"ban"`
	Seniority  []string `json:"seniority"`
	Contract   []string `json:"contract"`
	Location   []string `json:"location"`
	Salary     Salary   `json:"salary"`
}

// Must holds the gating term sets: All must every one match, Any needs
// at least one (unless the related fallback applies).
type Must struct {
	Any []string `json:"any"`
	All []string `json:"all"`
}

// Salary is the optional numeric gate.
type Salary struct {
	Currency string `json:"currency"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

// Load reads and validates <dir>/<name>.json. Load errors carry the
// profile name and the parse diagnostic; the scorer is never invoked
// with an invalid profile.
func Load(dir, name string) (*Profile, error) {
	path := filepath.Join(dir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", name, err)
	}

	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("parsing profile %q: title is required", name)
	}
	if p.Salary.Currency == "" {
		p.Salary.Currency = "BRL"
	}

	return &p, nil
}

// List returns the profile names available in dir, without the .json
// suffix.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles in %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Manager tracks the active profile name and loads it on demand.
// Switching is wholesale: SetActive validates the new profile before
// committing the name.
type Manager struct {
	dir string

	mu     sync.RWMutex
	active string
}

func NewManager(dir, active string) *Manager {
	return &Manager{dir: dir, active: active}
}

// Active returns the current profile name.
func (m *Manager) Active() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Current loads the active profile.
func (m *Manager) Current() (*Profile, error) {
	return Load(m.dir, m.Active())
}

// List names the profiles available under the manager's directory.
func (m *Manager) List() ([]string, error) {
	return List(m.dir)
}

// SetActive switches to the named profile, validating it first.
func (m *Manager) SetActive(name string) (*Profile, error) {
	p, err := Load(m.dir, name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.active = name
	m.mu.Unlock()
	return p, nil
}
