package transcode

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Errors returned by the decoder.
var (
	ErrNoSamples     = errors.New("transcode: no samples decoded")
	ErrColumnCount   = errors.New("transcode: rows must have one or two columns")
	ErrInvalidNumber = errors.New("transcode: invalid number")
)

// AudioData represents decoded samples at a known sample rate
type AudioData struct {
	Samples    []float64     `json:"-" yaml:"-"`
	SampleRate float64       `json:"sample_rate" yaml:"sample_rate"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Source     string        `json:"source,omitempty" yaml:"source,omitempty"`
}

// NumSamples returns the number of decoded samples
func (a *AudioData) NumSamples() int {
	return len(a.Samples)
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	FallbackSampleRate float64 `json:"fallback_sample_rate"` // Used for single-column input or unusable time columns
	MaxSamples         int     `json:"max_samples"`          // 0 means no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		FallbackSampleRate: 44100,
		MaxSamples:         0,
	}
}

// Decoder turns text or raw sample data into AudioData
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new sample decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "sample_decoder",
		}),
	}
}

// DecodeFile decodes a CSV file, or raw little-endian float64 samples when
// the extension is .f64 / .raw
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".f64") || strings.HasSuffix(lower, ".raw") {
		return d.DecodeRawFloat64(data, d.config.FallbackSampleRate, filename)
	}

	return d.DecodeCSV(bytes.NewReader(data), filename)
}

// DecodeCSV reads comma-separated samples.
//
// One column: amplitudes at the fallback sample rate.
// Two columns: time (s), amplitude; the rate is 1/mean(dt), rounded to the
// nearest Hz, falling back when dt <= 0.
// A first row that does not parse as numbers is treated as a header.
func (d *Decoder) DecodeCSV(r io.Reader, source string) (*AudioData, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "DecodeCSV",
		"source":   source,
	})

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var times, values []float64
	columns := 0

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row+1, err)
		}

		record = trimEmpty(record)
		if len(record) == 0 {
			continue
		}

		nums, err := parseRecord(record)
		if err != nil {
			if row == 0 {
				logger.Debug("Skipping header row", logging.Fields{"header": record})
				continue
			}
			return nil, fmt.Errorf("csv row %d: %w", row+1, err)
		}

		if columns == 0 {
			columns = len(nums)
			if columns > 2 {
				return nil, fmt.Errorf("csv row %d has %d columns: %w", row+1, columns, ErrColumnCount)
			}
		}
		if len(nums) != columns {
			return nil, fmt.Errorf("csv row %d has %d columns, expected %d: %w", row+1, len(nums), columns, ErrColumnCount)
		}

		if columns == 2 {
			times = append(times, nums[0])
			values = append(values, nums[1])
		} else {
			values = append(values, nums[0])
		}

		if d.config.MaxSamples > 0 && len(values) >= d.config.MaxSamples {
			break
		}
	}

	if len(values) == 0 {
		return nil, ErrNoSamples
	}

	sampleRate := d.config.FallbackSampleRate
	if columns == 2 {
		if dt := common.Mean(common.Diff(times)); dt > 0 {
			sampleRate = math.Round(1.0 / dt)
		}
	}

	audio := newAudioData(values, sampleRate, source)
	logger.Debug("CSV decode completed", logging.Fields{
		"samples":     len(values),
		"columns":     columns,
		"sample_rate": sampleRate,
	})

	return audio, nil
}

// DecodeRawFloat64 converts raw little-endian float64 bytes to AudioData
func (d *Decoder) DecodeRawFloat64(data []byte, sampleRate float64, source string) (*AudioData, error) {
	// Trim to multiple of 8 bytes
	data = data[:len(data)-(len(data)%8)]
	if len(data) == 0 {
		return nil, ErrNoSamples
	}

	sampleCount := len(data) / 8
	if d.config.MaxSamples > 0 {
		sampleCount = min(sampleCount, d.config.MaxSamples)
	}

	samples := make([]float64, sampleCount)
	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return newAudioData(samples, sampleRate, source), nil
}

func newAudioData(samples []float64, sampleRate float64, source string) *AudioData {
	var duration time.Duration
	if sampleRate > 0 {
		duration = time.Duration(float64(len(samples)) / sampleRate * float64(time.Second))
	}
	return &AudioData{
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   duration,
		Source:     source,
	}
}

func parseRecord(record []string) ([]float64, error) {
	nums := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", field, ErrInvalidNumber)
		}
		nums[i] = v
	}
	return nums, nil
}

// trimEmpty drops trailing empty fields left by trailing commas
func trimEmpty(record []string) []string {
	for len(record) > 0 && strings.TrimSpace(record[len(record)-1]) == "" {
		record = record[:len(record)-1]
	}
	return record
}
