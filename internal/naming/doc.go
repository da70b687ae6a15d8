// Package naming derives everything a job is called on disk: the sanitized
// base name, the per-video output directory, the frame filename pattern
// handed to ffmpeg, and in-run disambiguation of directories that collide.
//
// Files:
//   - job.go: Job and NewJob.
//   - sanitize.go: SanitizeBaseName.
//   - outputpath.go: FramePattern, FrameName, MatchFrame.
//   - collision.go: CollisionResolver.
package naming
