// Package probe detects the two capabilities the extraction planner cares
// about: an HDR colour space on the primary video stream and a Dolby-family
// audio track.
//
// Two backends satisfy [Prober]:
//
//   - [StreamProber] runs one ffprobe JSON query and reads typed stream
//     descriptors (transfer, primaries, codec, profile).
//   - [TextProber] runs ffmpeg in inspection mode and scans its diagnostic
//     text for indicator substrings ([ScanText]).
//
// [FallbackProber] chains them so the structured query is tried first.
// Every backend returns a zero [Result] alongside its error; callers treat
// a failed probe as "not HDR, no Dolby audio" and keep going.
package probe
