package deskew

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// RunStats tracks aggregate counters across one traversal call.
type RunStats struct {
	Processed      int // images rotated and written
	SubdirFailures int // recursive descents that reported failure
}

// Processor applies one angle-resolution policy across a single file or
// a directory tree. All processing is sequential; nothing is shared
// between files beyond the read-only Source and the output root.
type Processor struct {
	Source    AngleSource
	OutputDir string // destination for directory runs, shared by every recursion level
	Recursive bool
	Log       *logrus.Logger
}

func (p *Processor) logger() *logrus.Logger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// ProcessFile rotates one image and writes it to outputPath. A resolved
// angle of exactly zero means no rotation was requested and is reported
// as a failure rather than copying the input through.
func (p *Processor) ProcessFile(inputPath, outputPath string) error {
	degrees, err := p.Source.AngleFor(inputPath)
	if err != nil {
		return err
	}
	if degrees == 0.0 {
		return &ProcessError{Kind: KindNoSignal, Path: inputPath, Err: ErrZeroAngle}
	}
	img, err := ReadImage(inputPath)
	if err != nil {
		return &ProcessError{Kind: KindDecode, Path: inputPath, Err: err}
	}
	rotated, err := Rotate(img, degrees)
	if err != nil {
		return &ProcessError{Kind: KindGeometry, Path: inputPath, Err: err}
	}
	if err := WriteImage(rotated, outputPath); err != nil {
		return &ProcessError{Kind: KindEncode, Path: outputPath, Err: err}
	}
	p.logger().Debugf("Image rotated by %.2f degrees and saved to %s", degrees, outputPath)
	return nil
}

// ProcessDirectory processes every recognized image directly under
// inputDir. Outputs land flat in OutputDir under the input filename, so
// recursive runs over nested directories share one namespace and
// identically named files overwrite each other.
//
// The first failing file aborts the call. A failing recursive descent
// does not: it is counted in RunStats.SubdirFailures and logged, but
// the parent traversal continues and still reports success. Entries
// that vanish or error mid-iteration are skipped with a diagnostic.
func (p *Processor) ProcessDirectory(inputDir string) (RunStats, error) {
	var stats RunStats
	log := p.logger()

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		log.Errorf("Failed to read directory %s: %v", inputDir, err)
		return stats, &ProcessError{Kind: KindTraversal, Path: inputDir, Err: err}
	}
	for _, entry := range entries {
		path := filepath.Join(inputDir, entry.Name())
		if _, err := entry.Info(); err != nil {
			log.Debugf("Warning: error accessing %s: %v", path, err)
			continue
		}
		if entry.IsDir() {
			if p.Recursive {
				sub, err := p.ProcessDirectory(path)
				stats.Processed += sub.Processed
				stats.SubdirFailures += sub.SubdirFailures
				if err != nil {
					stats.SubdirFailures++
					log.Warnf("Subdirectory %s failed: %v", path, err)
				}
			}
			continue
		}
		if !IsImageFile(entry.Name()) {
			continue
		}
		outputPath := filepath.Join(p.OutputDir, entry.Name())
		if err := p.ProcessFile(path, outputPath); err != nil {
			log.Errorf("Failed to process image %s: %v", path, err)
			return stats, err
		}
		stats.Processed++
		log.Debugf("Processed %s", path)
	}
	return stats, nil
}
