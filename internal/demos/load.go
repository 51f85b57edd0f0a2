package demos

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceBuiltin marks content bundled with the binary.
const SourceBuiltin = "builtin"

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltin returns the content bundled with the binary.
func LoadBuiltin() ([]*Content, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin content: %w", err)
	}

	contents := make([]*Content, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin content %s: %w", entry.Name(), err)
		}
		content, err := parseContent(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin content %s: %w", entry.Name(), err)
		}
		content.Source = SourceBuiltin
		contents = append(contents, content)
	}

	sortContents(contents)
	return contents, nil
}

// LoadFile reads a single content file from disk.
func LoadFile(path string) (*Content, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("content path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}

	content, err := parseContent(data)
	if err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}
	content.Source = path
	return content, nil
}

// LoadDir loads all YAML content files from a directory. A missing
// directory yields no content.
func LoadDir(dir string) ([]*Content, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Content{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Content{}, nil
		}
		return nil, fmt.Errorf("read content dir %s: %w", dir, err)
	}

	contents := make([]*Content, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		content, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}

	sortContents(contents)
	return contents, nil
}

// SearchPaths returns content directories in precedence order. An explicit
// dir, when set, comes first.
func SearchPaths(projectDir, dir string) []string {
	paths := make([]string, 0, 3)
	if strings.TrimSpace(dir) != "" {
		paths = append(paths, dir)
	}
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".showcase", "demos"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "showcase", "demos"))
	}
	return paths
}

// LoadCatalog loads content from the search paths with first-hit precedence
// by name, falling back to the builtins.
func LoadCatalog(projectDir, dir string) (*Catalog, error) {
	catalog := &Catalog{byName: make(map[string]*Content)}

	for _, path := range SearchPaths(projectDir, dir) {
		contents, err := LoadDir(path)
		if err != nil {
			return nil, err
		}
		for _, content := range contents {
			catalog.add(content)
		}
	}

	builtins, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	for _, content := range builtins {
		catalog.add(content)
	}

	return catalog, nil
}

// BuiltinCatalog returns a catalog of the bundled content only.
func BuiltinCatalog() (*Catalog, error) {
	builtins, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	catalog := &Catalog{byName: make(map[string]*Content)}
	for _, content := range builtins {
		catalog.add(content)
	}
	return catalog, nil
}

func parseContent(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	if err := normalizeContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

func sortContents(contents []*Content) {
	sort.Slice(contents, func(i, j int) bool {
		return contents[i].Name < contents[j].Name
	})
}
