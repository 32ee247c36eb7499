package deskew

import (
	"github.com/sirupsen/logrus"
)

// AngleMode selects how the rotation angle for a file is determined.
type AngleMode int

const (
	// ModeFixed applies one frozen angle to every file, either given
	// explicitly or estimated once from a reference image.
	ModeFixed AngleMode = iota
	// ModeAuto estimates a fresh angle for every file.
	ModeAuto
)

// AngleSource is the angle-resolution decision for a run. It is built
// once at startup and not mutated afterwards.
type AngleSource struct {
	Mode    AngleMode
	Degrees float64 // the frozen angle when Mode is ModeFixed
	Params  *EstimatorParams
}

// ResolveAngleSource decides the angle source for a run. A reference
// image takes precedence over an explicit angle: its skew is estimated
// once and reused for every file, and a reference that fails to decode
// fails the whole resolution with no fallback. Without a reference, a
// non-zero explicit angle is applied literally to every file, and an
// explicit zero selects per-file automatic estimation.
func ResolveAngleSource(referencePath string, explicit float64, params *EstimatorParams, log *logrus.Logger) (AngleSource, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if referencePath != "" {
		ref, err := ReadImage(referencePath)
		if err != nil {
			return AngleSource{}, &ProcessError{Kind: KindDecode, Path: referencePath, Err: err}
		}
		degrees, ok := Estimate(ref, params)
		if !ok {
			log.Debugf("No lines detected in reference image %s, angle resolves to zero", referencePath)
		} else {
			log.Debugf("Rotation angle determined from reference image: %.2f degrees", degrees)
		}
		return AngleSource{Mode: ModeFixed, Degrees: degrees, Params: params}, nil
	}
	if explicit != 0.0 {
		return AngleSource{Mode: ModeFixed, Degrees: explicit, Params: params}, nil
	}
	return AngleSource{Mode: ModeAuto, Params: params}, nil
}

// AngleFor resolves the rotation angle for one input file. In ModeAuto
// the file is decoded and estimated fresh on every call; nothing is
// cached or shared between files.
func (s AngleSource) AngleFor(path string) (float64, error) {
	if s.Mode == ModeFixed {
		return s.Degrees, nil
	}
	img, err := ReadImage(path)
	if err != nil {
		return 0, &ProcessError{Kind: KindDecode, Path: path, Err: err}
	}
	degrees, ok := Estimate(img, s.Params)
	if !ok {
		return 0, &ProcessError{Kind: KindNoSignal, Path: path, Err: ErrNoSignal}
	}
	return degrees, nil
}
