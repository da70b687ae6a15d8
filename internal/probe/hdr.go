package probe

import "strings"

// IsHDR reports whether the primary video stream carries HDR colour
// metadata: a PQ or HLG transfer, BT.2020 primaries, or Dolby Vision.
func (s *StreamInfo) IsHDR() bool {
	v := s.PrimaryVideo
	if v == nil {
		return false
	}

	switch v.ColorTransfer {
	case "smpte2084", "arib-std-b67":
		return true
	}

	if v.ColorPrimaries == "bt2020" || v.DolbyVision {
		return true
	}

	return false
}

// HasDolbyAudio reports whether any audio stream is TrueHD, E-AC-3, or
// advertises Atmos in its profile.
func (s *StreamInfo) HasDolbyAudio() bool {
	for _, a := range s.AudioStreams {
		switch a.Codec {
		case "truehd", "eac3":
			return true
		}
		if strings.Contains(strings.ToLower(a.Profile), "atmos") {
			return true
		}
	}
	return false
}
