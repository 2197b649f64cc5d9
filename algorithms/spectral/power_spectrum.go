package spectral

import (
	"math"
)

// Power returns the power spectrum |X[k]|^2 of the spectrum
func (s *Spectrum) Power() []float64 {
	return powerOf(s.Magnitudes)
}

// LogPower returns the power spectrum in dB, clamped at floorDB
func (s *Spectrum) LogPower(floorDB float64) []float64 {
	return logPowerOf(s.Magnitudes, floorDB)
}

// Power returns the per-frame power spectrum of an STFT result
func (r *STFTResult) Power() [][]float64 {
	power := make([][]float64, len(r.Magnitude))
	for t, frame := range r.Magnitude {
		power[t] = powerOf(frame)
	}
	return power
}

// LogPower returns the per-frame dB power spectrum of an STFT result
func (r *STFTResult) LogPower(floorDB float64) [][]float64 {
	logPower := make([][]float64, len(r.Magnitude))
	for t, frame := range r.Magnitude {
		logPower[t] = logPowerOf(frame, floorDB)
	}
	return logPower
}

func powerOf(magnitudes []float64) []float64 {
	power := make([]float64, len(magnitudes))
	for i, mag := range magnitudes {
		power[i] = mag * mag
	}
	return power
}

func logPowerOf(magnitudes []float64, floorDB float64) []float64 {
	floor := math.Pow(10, floorDB/10.0)
	logPower := make([]float64, len(magnitudes))

	for i, mag := range magnitudes {
		power := mag * mag
		if power < floor {
			power = floor
		}
		logPower[i] = 10 * math.Log10(power)
	}

	return logPower
}
