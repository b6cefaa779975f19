package mods

import (
	"errors"
	"fmt"
	"golf/common"
	"golf/report"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents a golf project as it is encoded in TOML
type tomlProject struct {
	Name           string `toml:"name"`
	OutputDir      string `toml:"output-dir,omitempty"`
	LogLevel       string `toml:"log-level,omitempty"`
	LogFile        string `toml:"log-file,omitempty"`
	ReservedPrefix string `toml:"reserved-prefix,omitempty"`
	Header         bool   `toml:"header"`
}

// Project is the validated project configuration.
type Project struct {
	// Name is the name of the project.  It is empty when no project file was
	// found.
	Name string

	// Root is the directory containing the project file.
	Root string

	// OutputDir is the absolute directory generated files are written to. If
	// it is empty, generated files are written alongside their sources.
	OutputDir string

	// LogLevel is the name of the configured log level or empty if the
	// project leaves it to the command line.
	LogLevel string

	// LogFile is the absolute path of the JSON log file or empty if no log
	// file should be written.
	LogFile string

	// ReservedPrefix is the prefix prepended to identifiers that collide with
	// Lua reserved words.
	ReservedPrefix string

	// Header indicates whether generated files begin with a "generated"
	// comment.
	Header bool
}

// DefaultProject returns the configuration used for a directory without a
// project file.
func DefaultProject(root string) *Project {
	return &Project{
		Root:           root,
		ReservedPrefix: common.DefaultReservedPrefix,
	}
}

// LoadProject loads and validates the project file in the directory `root`.
// If there is no project file, the default configuration is returned.
func LoadProject(root string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(root, common.ProjectFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProject(root), nil
		}

		return nil, fmt.Errorf("error reading project file: %w", err)
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, fmt.Errorf("error decoding project file: %w", err)
	}

	if tpf.Project == nil {
		return nil, fmt.Errorf("project file in %s is missing a [project] table", root)
	}

	return convertProject(root, tpf.Project)
}

// convertProject checks that the project file contents are valid and converts
// them into a project.
func convertProject(root string, tp *tomlProject) (*Project, error) {
	if tp.Name == "" {
		return nil, fmt.Errorf("missing project name for project at %s", root)
	}

	if !IsValidIdentifier(tp.Name) {
		return nil, errors.New("project name must be a valid identifier")
	}

	if tp.LogLevel != "" {
		if _, ok := report.LogLevelFromName(tp.LogLevel); !ok {
			return nil, fmt.Errorf("unknown log level `%s` in project %s", tp.LogLevel, tp.Name)
		}
	}

	proj := &Project{
		Name:           tp.Name,
		Root:           root,
		LogLevel:       tp.LogLevel,
		ReservedPrefix: common.DefaultReservedPrefix,
		Header:         tp.Header,
	}

	if tp.ReservedPrefix != "" {
		if !IsValidIdentifier(tp.ReservedPrefix) {
			return nil, fmt.Errorf("reserved prefix `%s` in project %s must be a valid identifier", tp.ReservedPrefix, tp.Name)
		}

		proj.ReservedPrefix = tp.ReservedPrefix
	}

	if tp.OutputDir != "" {
		proj.OutputDir = resolvePath(root, tp.OutputDir)
	}

	if tp.LogFile != "" {
		proj.LogFile = resolvePath(root, tp.LogFile)
	}

	return proj, nil
}

// resolvePath makes a path from the project file relative to the project root.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

// IsValidIdentifier reports whether idstr is an ASCII identifier: a letter or
// underscore followed by letters, digits and underscores.
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
