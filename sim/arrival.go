package sim

import "github.com/sirupsen/logrus"

// ArrivalProcess names an inter-arrival time distribution.
type ArrivalProcess string

const (
	ArrivalPoisson  ArrivalProcess = "poisson"
	ArrivalConstant ArrivalProcess = "constant"
)

var validArrivalProcesses = map[ArrivalProcess]bool{
	ArrivalPoisson:  true,
	ArrivalConstant: true,
}

// IsValidArrivalProcess reports whether name is a recognized arrival process.
func IsValidArrivalProcess(name string) bool {
	return validArrivalProcesses[ArrivalProcess(name)]
}

// ArrivalSampler generates inter-arrival times for a sensor.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in simulated time units.
	SampleIAT(src Source) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival times
// with mean 1/rate.
type PoissonSampler struct {
	rate float64 // tasks per time unit
}

func (s *PoissonSampler) SampleIAT(src Source) float64 {
	return src.ExpFloat64() / s.rate
}

// ConstantSampler emits tasks at a fixed interval of 1/rate. It draws
// nothing from the source.
type ConstantSampler struct {
	interval float64
}

func (s *ConstantSampler) SampleIAT(Source) float64 {
	return s.interval
}

// NewArrivalSampler creates an ArrivalSampler for the given process and rate.
// The rate is validated by Config.Validate before reaching here.
func NewArrivalSampler(process ArrivalProcess, rate float64) ArrivalSampler {
	switch process {
	case ArrivalPoisson:
		return &PoissonSampler{rate: rate}
	case ArrivalConstant:
		return &ConstantSampler{interval: 1.0 / rate}
	default:
		logrus.Warnf("unknown arrival process %q; falling back to poisson", process)
		return &PoissonSampler{rate: rate}
	}
}
