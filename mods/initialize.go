package mods

import (
	"errors"
	"fmt"
	"golf/common"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// InitProject creates a default project file in the directory `root`.  The
// project is named after the directory.
func InitProject(root string) (string, error) {
	projFilePath := filepath.Join(root, common.ProjectFileName)

	// check to see if a project already exists
	_, err := os.Stat(projFilePath)
	if err == nil {
		return "", errors.New("project file already exists")
	}

	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("project file error: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("project path error: %w", err)
	}

	name := projectNameFromDir(filepath.Base(absRoot))
	proj := &tomlProject{
		Name:      name,
		LogLevel:  "verbose",
		OutputDir: "out",
	}

	buff, err := toml.Marshal(&tomlProjectFile{Project: proj})
	if err != nil {
		return "", fmt.Errorf("error encoding TOML: %w", err)
	}

	if err := os.WriteFile(projFilePath, buff, 0644); err != nil {
		return "", fmt.Errorf("error creating project file: %w", err)
	}

	return name, nil
}

// projectNameFromDir converts a directory name into a valid project name.
func projectNameFromDir(dir string) string {
	sb := &strings.Builder{}
	for i, c := range dir {
		switch {
		case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
			sb.WriteRune(c)
		case '0' <= c && c <= '9':
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(c)
		default:
			sb.WriteRune('_')
		}
	}

	if sb.Len() == 0 {
		return "main"
	}

	return sb.String()
}
