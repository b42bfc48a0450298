package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const TitleLevel = "title.json"

var ErrLevelNotFound = errors.New("levels: level not found")

// FileName returns the embedded file name of 1-based level n.
func FileName(n int) string {
	return fmt.Sprintf("level_%d.json", n)
}

// LoadLevel reads, expands and validates level n.
func LoadLevel(n int) (*Level, error) {
	if n < 1 || n > Count() {
		return nil, fmt.Errorf("levels: load %d: %w", n, ErrLevelNotFound)
	}
	return LoadLevelFromFS(FileName(n))
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: read %s: %w", name, ErrLevelNotFound)
		}
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes, expands and validates a level document.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Expand(); err != nil {
		return nil, err
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the playable level files in order.
func Names() []string {
	entries, err := fs.Glob(LevelsFS, "level_*.json")
	if err != nil {
		return nil
	}
	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for _, name := range entries {
		base := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), "level_"), ".json")
		n, err := strconv.Atoi(base)
		if err != nil || n < 1 {
			continue
		}
		found = append(found, numbered{n: n, name: name})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, f.name)
	}
	return out
}

// Count reports how many consecutive levels starting at 1 are embedded.
func Count() int {
	n := 0
	for i, name := range Names() {
		if name != FileName(i+1) {
			break
		}
		n++
	}
	return n
}
