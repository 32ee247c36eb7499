package deskew

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// writeTestImage encodes a synthetic image with the given skew to path.
func writeTestImage(t *testing.T, path string, degrees float64) {
	t.Helper()
	require.NoError(t, WriteImage(drawLines(400, 300, degrees, 40), path))
}

func TestResolveExplicitAngle(t *testing.T) {
	source, err := ResolveAngleSource("", 7.5, nil, quietLogger())
	require.NoError(t, err)
	require.Equal(t, ModeFixed, source.Mode)
	require.Equal(t, 7.5, source.Degrees)

	// Fixed mode never touches the file.
	degrees, err := source.AngleFor("does-not-exist.png")
	require.NoError(t, err)
	require.Equal(t, 7.5, degrees)
}

func TestResolveReferenceTakesPrecedence(t *testing.T) {
	ref := filepath.Join(t.TempDir(), "ref.png")
	writeTestImage(t, ref, 5)

	source, err := ResolveAngleSource(ref, 90, NewEstimatorParams(), quietLogger())
	require.NoError(t, err)
	require.Equal(t, ModeFixed, source.Mode)
	require.InDelta(t, 5, source.Degrees, 1.0)
}

func TestResolveReferenceDecodeFailure(t *testing.T) {
	ref := filepath.Join(t.TempDir(), "ref.png")
	require.NoError(t, os.WriteFile(ref, []byte("not an image"), 0644))

	_, err := ResolveAngleSource(ref, 5, nil, quietLogger())
	require.Error(t, err)
	var perr *ProcessError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindDecode, perr.Kind)
}

func TestResolveAutoPerFile(t *testing.T) {
	source, err := ResolveAngleSource("", 0, NewEstimatorParams(), quietLogger())
	require.NoError(t, err)
	require.Equal(t, ModeAuto, source.Mode)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writeTestImage(t, a, 5)
	writeTestImage(t, b, -10)

	degreesA, err := source.AngleFor(a)
	require.NoError(t, err)
	degreesB, err := source.AngleFor(b)
	require.NoError(t, err)
	require.InDelta(t, 5, degreesA, 1.0)
	require.InDelta(t, -10, degreesB, 1.0)
}

func TestAngleForNoSignal(t *testing.T) {
	blank := filepath.Join(t.TempDir(), "blank.png")
	img := drawLines(200, 200, 0, 1000) // spacing beyond the canvas, no lines drawn
	require.NoError(t, WriteImage(img, blank))

	source, err := ResolveAngleSource("", 0, nil, quietLogger())
	require.NoError(t, err)

	_, err = source.AngleFor(blank)
	require.ErrorIs(t, err, ErrNoSignal)
	var perr *ProcessError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindNoSignal, perr.Kind)
}

func TestProcessErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ProcessError{Kind: KindEncode, Path: "x.png", Err: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "x.png")
}
