package probe

// VideoStream holds the colour-relevant properties of one video stream.
type VideoStream struct {
	Index          int
	Codec          string
	Profile        string
	PixFmt         string
	ColorTransfer  string
	ColorPrimaries string
	ColorSpace     string
	DolbyVision    bool // DOVI configuration record or dvh1/dvhe tag.
	IsAttachedPic  bool
}

// AudioStream holds the codec-relevant properties of one audio stream.
type AudioStream struct {
	Index      int
	Codec      string
	Profile    string
	Channels   int
	SampleRate int
	Language   string
}

// StreamInfo is the parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type StreamInfo struct {
	PrimaryVideo *VideoStream
	AudioStreams []AudioStream
}

// Capabilities evaluates the requested capabilities.
func (s *StreamInfo) Capabilities(req Request) Result {
	var r Result
	if req.DetectHDR {
		r.IsHDR = s.IsHDR()
	}
	if req.DetectDolby {
		r.HasDolbyAudio = s.HasDolbyAudio()
	}
	return r
}
