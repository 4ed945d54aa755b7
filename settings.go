package soundstage

// AudioManagerSettings enumerates the fixed capacities for every bounded
// pool the engine owns, fixed when the Manager is constructed. Exceeding
// a limit returns the matching …LimitReached error, deterministically, except for
// Instances which evicts the oldest instance instead (§4.4, §9).
type AudioManagerSettings struct {
	NumCommands   int
	NumSounds     int
	NumInstances  int
	NumParameters int
	NumSubTracks  int
	NumSendTracks int
	NumGroups     int
	NumMetronomes int
	NumSequences  int
	NumStreams    int
	SampleRate    int
}

// DefaultAudioManagerSettings returns capacities suitable for a small game.
func DefaultAudioManagerSettings() AudioManagerSettings {
	return AudioManagerSettings{
		NumCommands:   512,
		NumSounds:     256,
		NumInstances:  128,
		NumParameters: 128,
		NumSubTracks:  32,
		NumSendTracks: 8,
		NumGroups:     32,
		NumMetronomes: 4,
		NumSequences:  64,
		NumStreams:    16,
		SampleRate:    48000,
	}
}
