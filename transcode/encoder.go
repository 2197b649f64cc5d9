package transcode

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
)

// SpectrumCSVHeader is the header row written by WriteSpectrumCSV
var SpectrumCSVHeader = []string{"Frequency (Hz)", "Magnitude", "Phase"}

// WriteSpectrumCSV writes one row per frequency bin
func WriteSpectrumCSV(w io.Writer, s *spectral.Spectrum) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SpectrumCSVHeader); err != nil {
		return err
	}

	for i := range s.Magnitudes {
		var freq float64
		if i < len(s.Frequencies) {
			freq = s.Frequencies[i]
		}
		row := []string{formatFloat(freq), formatFloat(s.Magnitudes[i]), formatFloat(s.Phases[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteColumnCSV writes values as a single column under header
func WriteColumnCSV(w io.Writer, header string, values []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{header}); err != nil {
		return err
	}

	for _, v := range values {
		if err := cw.Write([]string{formatFloat(v)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSpectrogramCSV writes one row per frame: the frame start time in
// seconds followed by the magnitude of every bin
func WriteSpectrogramCSV(w io.Writer, r *spectral.STFTResult) error {
	cw := csv.NewWriter(w)

	header := make([]string, r.FreqBins+1)
	header[0] = "Time (s)"
	for k := range r.FreqBins {
		header[k+1] = formatFloat(float64(k) * r.FreqResolution)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, r.FreqBins+1)
	for t, frame := range r.Magnitude {
		row[0] = formatFloat(float64(t) * r.TimeResolution)
		for k, m := range frame {
			row[k+1] = formatFloat(m)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
