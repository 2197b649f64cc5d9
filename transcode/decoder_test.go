package transcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSVSingleColumn(t *testing.T) {
	d := NewDecoder(nil)

	audio, err := d.DecodeCSV(strings.NewReader("0.5\n-0.25\n1\n"), "inline")
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, -0.25, 1}, audio.Samples)
	assert.Equal(t, 44100.0, audio.SampleRate)
	assert.Equal(t, "inline", audio.Source)
	assert.Equal(t, 3, audio.NumSamples())
}

func TestDecodeCSVTwoColumnsDerivesRate(t *testing.T) {
	var b strings.Builder
	for i := range 80 {
		fmt.Fprintf(&b, "%.9f,%.6f\n", float64(i)/8000, math.Sin(float64(i)))
	}

	audio, err := NewDecoder(nil).DecodeCSV(strings.NewReader(b.String()), "two-col")
	require.NoError(t, err)

	assert.Len(t, audio.Samples, 80)
	assert.Equal(t, 8000.0, audio.SampleRate)
	assert.Equal(t, 10*time.Millisecond, audio.Duration)
}

func TestDecodeCSVNonIncreasingTimeFallsBack(t *testing.T) {
	d := NewDecoder(&DecoderConfig{FallbackSampleRate: 22050})

	audio, err := d.DecodeCSV(strings.NewReader("0,1\n0,2\n0,3\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 22050.0, audio.SampleRate)

	// A single row has no time differences at all
	audio, err = d.DecodeCSV(strings.NewReader("0.1,1\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 22050.0, audio.SampleRate)
}

func TestDecodeCSVHeaderAndComments(t *testing.T) {
	input := "time,amplitude\n# comment\n0.0,1\n0.5,2\n\n1.0,3\n"

	audio, err := NewDecoder(nil).DecodeCSV(strings.NewReader(input), "")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, audio.Samples)
	assert.Equal(t, 2.0, audio.SampleRate)
}

func TestDecodeCSVErrors(t *testing.T) {
	d := NewDecoder(nil)

	_, err := d.DecodeCSV(strings.NewReader(""), "")
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = d.DecodeCSV(strings.NewReader("1,2,3\n"), "")
	assert.ErrorIs(t, err, ErrColumnCount)

	_, err = d.DecodeCSV(strings.NewReader("1,2\n3\n"), "")
	assert.ErrorIs(t, err, ErrColumnCount)

	_, err = d.DecodeCSV(strings.NewReader("1\nabc\n"), "")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestDecodeCSVMaxSamples(t *testing.T) {
	d := NewDecoder(&DecoderConfig{FallbackSampleRate: 100, MaxSamples: 2})

	audio, err := d.DecodeCSV(strings.NewReader("1\n2\n3\n4\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, audio.Samples)
	assert.Equal(t, 20*time.Millisecond, audio.Duration)
}

func TestDecodeRawFloat64(t *testing.T) {
	want := []float64{0.25, -1, math.Pi}
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, want))
	buf.WriteByte(0xff) // partial trailing sample is dropped

	audio, err := NewDecoder(nil).DecodeRawFloat64(buf.Bytes(), 48000, "raw")
	require.NoError(t, err)
	assert.Equal(t, want, audio.Samples)
	assert.Equal(t, 48000.0, audio.SampleRate)

	_, err = NewDecoder(nil).DecodeRawFloat64([]byte{1, 2, 3}, 48000, "raw")
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "signal.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("0,1\n0.001,0\n0.002,-1\n"), 0o644))

	audio, err := NewDecoder(nil).DecodeFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, -1}, audio.Samples)
	assert.Equal(t, 1000.0, audio.SampleRate)

	rawPath := filepath.Join(dir, "signal.f64")
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, []float64{1, 2}))
	require.NoError(t, os.WriteFile(rawPath, buf.Bytes(), 0o644))

	audio, err = NewDecoder(&DecoderConfig{FallbackSampleRate: 8000}).DecodeFile(rawPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, audio.Samples)
	assert.Equal(t, 8000.0, audio.SampleRate)

	_, err = NewDecoder(nil).DecodeFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
