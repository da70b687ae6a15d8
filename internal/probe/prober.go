package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StreamProber runs a single ffprobe JSON call per file and derives the
// capabilities from typed stream descriptors.
type StreamProber struct {
	FFprobePath string
	Timeout     time.Duration // Zero disables the timeout.
	Run         RunFunc       // Nil means ExecRun.
}

// NewStreamProber returns a StreamProber using os/exec.
func NewStreamProber(ffprobePath string, timeout time.Duration) *StreamProber {
	return &StreamProber{FFprobePath: ffprobePath, Timeout: timeout, Run: ExecRun}
}

// Probe implements [Prober].
func (p *StreamProber) Probe(ctx context.Context, path string, req Request) (Result, error) {
	if !req.Any() {
		return Result{}, nil
	}
	info, err := p.Streams(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return info.Capabilities(req), nil
}

// Streams runs ffprobe against path and returns the parsed stream list.
func (p *StreamProber) Streams(ctx context.Context, path string) (*StreamInfo, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	run := p.Run
	if run == nil {
		run = ExecRun
	}

	out, stderr, err := run(ctx, p.FFprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return nil, fmt.Errorf("ffprobe %q: %w: %s", path, err, msg)
		}
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a StreamInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*StreamInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildInfo(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index          int               `json:"index"`
	CodecName      string            `json:"codec_name"`
	CodecType      string            `json:"codec_type"`
	CodecTag       string            `json:"codec_tag_string"`
	Profile        string            `json:"profile"`
	PixFmt         string            `json:"pix_fmt"`
	ColorTransfer  string            `json:"color_transfer"`
	ColorPrimaries string            `json:"color_primaries"`
	ColorSpace     string            `json:"color_space"`
	Channels       int               `json:"channels"`
	SampleRate     string            `json:"sample_rate"`
	Disposition    map[string]int    `json:"disposition"`
	Tags           map[string]string `json:"tags"`
	SideData       []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	Type string `json:"side_data_type"`
}

// --- Conversion from wire types to domain types ---

func buildInfo(raw *ffprobeOutput) *StreamInfo {
	info := &StreamInfo{}
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			vs := convertVideo(s)
			if !vs.IsAttachedPic && info.PrimaryVideo == nil {
				info.PrimaryVideo = &vs
			}
		case "audio":
			info.AudioStreams = append(info.AudioStreams, convertAudio(s))
		}
	}
	return info
}

func convertVideo(s *ffprobeStream) VideoStream {
	dovi := s.CodecTag == "dvh1" || s.CodecTag == "dvhe"
	for _, sd := range s.SideData {
		if strings.Contains(strings.ToLower(sd.Type), "dovi") {
			dovi = true
		}
	}
	return VideoStream{
		Index:          s.Index,
		Codec:          s.CodecName,
		Profile:        s.Profile,
		PixFmt:         s.PixFmt,
		ColorTransfer:  s.ColorTransfer,
		ColorPrimaries: s.ColorPrimaries,
		ColorSpace:     s.ColorSpace,
		DolbyVision:    dovi,
		IsAttachedPic:  s.Disposition["attached_pic"] == 1,
	}
}

func convertAudio(s *ffprobeStream) AudioStream {
	return AudioStream{
		Index:      s.Index,
		Codec:      s.CodecName,
		Profile:    s.Profile,
		Channels:   s.Channels,
		SampleRate: parseInt(s.SampleRate),
		Language:   s.Tags["language"],
	}
}

// ffprobe returns numbers as strings.
func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
