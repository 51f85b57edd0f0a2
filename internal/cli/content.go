package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/demos"
)

func loadCatalog(cfg *config.Config) (*demos.Catalog, error) {
	progress := startProgress("Loading demo content")

	dir := ""
	if cfg != nil {
		dir = cfg.Demo.ScriptsDir
	}
	wd := workingDir()
	catalog, err := demos.LoadCatalog(wd, dir)
	if err != nil {
		progress.Fail(err)
		return nil, &PreflightError{
			Message:  err.Error(),
			Hint:     "Fix or remove the content file, or point demo.scripts_dir elsewhere",
			NextStep: "showcase scripts list",
		}
	}
	for _, note := range sourceNotes(catalog.All(), wd) {
		progress.Note("%s", note)
	}
	progress.Done()
	return catalog, nil
}

// sourceNotes counts content per origin: builtins first, then each override
// directory, shown relative to wd when it lies below it.
func sourceNotes(items []*demos.Content, wd string) []string {
	builtin := 0
	byDir := make(map[string]int)
	for _, item := range items {
		if item.Source == demos.SourceBuiltin {
			builtin++
			continue
		}
		byDir[displayDir(filepath.Dir(item.Source), wd)]++
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	notes := make([]string, 0, len(dirs)+1)
	if builtin > 0 {
		notes = append(notes, fmt.Sprintf("%d builtin", builtin))
	}
	for _, dir := range dirs {
		notes = append(notes, fmt.Sprintf("%d from %s", byDir[dir], dir))
	}
	return notes
}

func displayDir(dir, wd string) string {
	if wd == "" {
		return dir
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return rel
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

func filterContents(items []*demos.Content, tags []string) []*demos.Content {
	if len(tags) == 0 {
		return items
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	out := make([]*demos.Content, 0, len(items))
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
