package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/philipparndt/meshclean/pkg/mesh"
)

// Stage identifies where in the per-file pipeline a failure occurred
type Stage string

const (
	StageLoad   Stage = "load"
	StageSplit  Stage = "split"
	StageSelect Stage = "select"
	StageExport Stage = "export"
)

// StageError wraps a per-file failure with the pipeline stage and input path
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ProcessFile cleans a single mesh file: load, split into connected
// components, keep the main one, export to outputPath. Single-component
// meshes pass through unmodified. All failures are returned as *StageError;
// nothing is written on failure.
func ProcessFile(logger *log.Logger, inputPath, outputPath string, method Method) error {
	name := filepath.Base(inputPath)

	m, err := mesh.Load(inputPath)
	if err != nil {
		return &StageError{Stage: StageLoad, Path: inputPath, Err: err}
	}

	components := m.Split(false)

	selected := m
	if len(components) > 1 {
		logger.Debugf("found %d components in %s", len(components), name)
		selected, err = SelectMainComponent(components, method)
		if err != nil {
			return &StageError{Stage: StageSelect, Path: inputPath, Err: err}
		}
	} else {
		logger.Debugf("only one component found in %s", name)
	}

	if err := mesh.Export(selected, outputPath); err != nil {
		return &StageError{Stage: StageExport, Path: inputPath, Err: err}
	}
	return nil
}
