// Package planner turns a probe result and the frozen batch settings into a
// FilterPlan: the optional stream-selection directive and the video filter
// graph the ffmpeg package places on the command line.
//
// Decision order:
//  1. ProbeRequest: which capabilities are worth probing at all.
//  2. ShouldToneMap: hdr mode x detected HDR.
//  3. ShouldRemoveAudio: dolby mode x detected Dolby audio.
//  4. BuildVideoFilter: rate filter, or the fixed tone-map chain around it.
package planner
