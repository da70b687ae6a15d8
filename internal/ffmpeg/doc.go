// Package ffmpeg assembles and runs the frame-extraction command and
// classifies its failures.
//
// Files:
//   - builder.go: Command and Build, a pure function from job, plan and
//     batch settings to an argument list.
//   - executor.go: Executor, which runs one Command synchronously with an
//     optional timeout and captures exit code, stdout and stderr.
//   - errors.go: ErrorKind and the ordered stderr classification.
package ffmpeg
