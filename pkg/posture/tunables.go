package posture

import "time"

// DetectorConfig carries the heuristic thresholds of the windowed detector.
// The values moved around between revisions of the heuristic, so none of
// them are hardcoded in the detection path.
type DetectorConfig struct {
	// MinSamples is the minimum reading count, before and after the
	// confidence filter, below which the detector is a no-op.
	MinSamples int
	// ConfidenceFloor drops readings the model was not sure about.
	ConfidenceFloor float64
	// AngleThreshold is the neck angle (degrees) at or above which a
	// reading counts as bad regardless of its label.
	AngleThreshold float64
	// BadRatioGate is the minimum fraction of non-"good" labels.
	BadRatioGate float64
	// StreakGate is the minimum run of consecutive bad readings.
	StreakGate int
	// DurationGateSeconds is the minimum estimated bad duration.
	DurationGateSeconds int
	// SampleIntervalSeconds is the assumed spacing between readings used
	// by the duration estimate. Actual timestamp gaps are not consulted.
	SampleIntervalSeconds int
}

func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinSamples:            6,
		ConfidenceFloor:       0.65,
		AngleThreshold:        15.0,
		BadRatioGate:          0.4,
		StreakGate:            3,
		DurationGateSeconds:   60,
		SampleIntervalSeconds: 5,
	}
}

type DispatcherConfig struct {
	// Cooldown is the minimum spacing between posture warnings per user.
	Cooldown time.Duration
	// SevereSeconds and ModerateBadRatio pick the message tier,
	// evaluated in that order, first match wins.
	SevereSeconds    int
	ModerateBadRatio float64
	// PushTimeout bounds the outbound gateway call.
	PushTimeout time.Duration
}

func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Cooldown:         15 * time.Minute,
		SevereSeconds:    240,
		ModerateBadRatio: 0.7,
		PushTimeout:      5 * time.Second,
	}
}

type PipelineConfig struct {
	// Lookback bounds the reading window of one batch run.
	Lookback time.Duration
}

func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{Lookback: 5 * time.Minute}
}

type Tunables struct {
	Detector   DetectorConfig
	Dispatcher DispatcherConfig
	Pipeline   PipelineConfig
}

func DefaultTunables() Tunables {
	return Tunables{
		Detector:   DefaultDetectorConfig(),
		Dispatcher: DefaultDispatcherConfig(),
		Pipeline:   DefaultPipelineConfig(),
	}
}
