package config

const (
	defaultWidth               = 1920
	defaultHeight              = 1080
	defaultFPS                 = 30
	defaultDimOpacity          = 0.7
	defaultTracks              = 3
	defaultFFprobeBinary       = "ffprobe"
	defaultProbeTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	maxDefaultTracks           = 64
	maxFPS                     = 240
)

// Seek policies accepted by playback.seek_policy.
const (
	SeekPolicyUnbounded = "unbounded"
	SeekPolicyClamp     = "clamp"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Composition: Composition{
			Width:  defaultWidth,
			Height: defaultHeight,
			FPS:    defaultFPS,
		},
		Preview: Preview{
			DimUnselected: true,
			DimOpacity:    defaultDimOpacity,
		},
		Playback: Playback{
			SeekPolicy: SeekPolicyUnbounded,
		},
		Timeline: Timeline{
			DefaultTracks: defaultTracks,
		},
		Ingest: Ingest{
			FFprobeBinary:       defaultFFprobeBinary,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
