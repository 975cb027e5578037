// Package prompts loads and renders the judge instruction templates.
// Defaults are embedded in the binary; a project directory can override
// individual prompts by key.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	textTemplate "text/template"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Required prompt keys. Startup fails fast when any is missing.
var requiredPrompts = []string{
	"concept_judge_system",
	"code_quality_judge_system",
	"difficulty_judge_system",
	"summarizer_system",
}

// Manager handles loading and rendering prompt templates
type Manager struct {
	prompts map[string]string
	sources map[string]string // Track which file provided each prompt (for debugging)
}

// NewManager creates a manager from the embedded defaults plus optional
// overrides from a project directory. Keys in the override directory
// replace the embedded ones.
func NewManager(overrideDir string) (*Manager, error) {
	pm := &Manager{
		prompts: make(map[string]string),
		sources: make(map[string]string),
	}

	if err := pm.loadEmbedded(); err != nil {
		return nil, fmt.Errorf("failed to load embedded prompts: %w", err)
	}

	if overrideDir != "" {
		if _, err := os.Stat(overrideDir); err == nil {
			if err := pm.loadDirectory(overrideDir, "project"); err != nil {
				return nil, fmt.Errorf("failed to load prompt overrides: %w", err)
			}
		}
		// Missing override dir just means no overrides
	}

	if err := pm.validateRequiredPrompts(); err != nil {
		return nil, err
	}

	return pm, nil
}

// NewManagerFromMap creates a prompt manager from a map (useful for testing)
func NewManagerFromMap(prompts map[string]string) *Manager {
	sources := make(map[string]string)
	for key := range prompts {
		sources[key] = "test:map"
	}
	return &Manager{
		prompts: prompts,
		sources: sources,
	}
}

func (pm *Manager) loadEmbedded() error {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		data, err := defaultsFS.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return err
		}
		if err := pm.merge(data, "embedded:"+entry.Name()); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// loadDirectory loads all YAML files from a directory
func (pm *Manager) loadDirectory(dir, source string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if err := pm.merge(data, source+":"+entry.Name()); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func (pm *Manager) merge(data []byte, source string) error {
	var loaded map[string]string
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	for key, value := range loaded {
		pm.prompts[key] = value
		pm.sources[key] = source
	}
	return nil
}

// validateRequiredPrompts ensures critical prompts exist
func (pm *Manager) validateRequiredPrompts() error {
	var missing []string
	for _, key := range requiredPrompts {
		if _, ok := pm.prompts[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required prompts: %v", missing)
	}
	return nil
}

// Get returns a raw prompt by name
func (pm *Manager) Get(name string) (string, error) {
	prompt, ok := pm.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt '%s' not found (available: %v)", name, pm.getAvailableNames())
	}
	return prompt, nil
}

// Render renders a prompt template with the given variables
func (pm *Manager) Render(name string, vars map[string]interface{}) (string, error) {
	promptTemplate, err := pm.Get(name)
	if err != nil {
		return "", err
	}

	tmpl, err := textTemplate.New(name).Option("missingkey=error").Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", name, err)
	}

	return buf.String(), nil
}

// HasPrompt checks if a prompt exists
func (pm *Manager) HasPrompt(name string) bool {
	_, ok := pm.prompts[name]
	return ok
}

// GetSource returns which file provided a prompt (for debugging)
func (pm *Manager) GetSource(name string) string {
	if source, ok := pm.sources[name]; ok {
		return source
	}
	return "unknown"
}

// CountPrompts returns the total number of loaded prompts
func (pm *Manager) CountPrompts() int {
	return len(pm.prompts)
}

func (pm *Manager) getAvailableNames() []string {
	names := make([]string, 0, len(pm.prompts))
	for name := range pm.prompts {
		names = append(names, name)
	}
	return names
}
