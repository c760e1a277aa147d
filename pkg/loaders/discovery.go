package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a discovered scene file
type SceneInfo struct {
	Name        string `json:"name"`        // file name without extension
	DisplayName string `json:"displayName"` // human-readable name
	Description string `json:"description"` // optional description
	FilePath    string `json:"filePath"`    // path to the scene file
}

// DiscoverScenes scans dir for scene files and reads their leading comment
// block for metadata. A file that cannot be opened keeps its fallback
// metadata rather than failing the whole listing.
func DiscoverScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.obj"))
	if err != nil {
		return nil, fmt.Errorf("scanning scene directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, readSceneInfo(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// readSceneInfo extracts metadata from header comments such as
// "# Scene: Cornell Box" and "# Description: ...". Parsing stops at the
// first statement line.
func readSceneInfo(filePath string) SceneInfo {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		Name:        name,
		DisplayName: titleCase(name),
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			info.DisplayName = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		}
	}
	return info
}

// titleCase converts a filename-style string to a display name,
// e.g. "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
