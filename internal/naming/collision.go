package naming

import (
	"fmt"
	"sync"
)

// CollisionResolver tracks output directories claimed by input files and
// resolves duplicates by appending "_dupN" suffixes. Two inputs such as
// "clip.mp4" and "clip.mkv" sanitize to the same directory; the second one
// gets "clip_dup1". All methods are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // output dir → input path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Resolve returns the final output directory for input. If requestedDir is
// unclaimed (or already owned by input), it is returned as-is. Otherwise a
// "_dupN" variant is generated.
func (cr *CollisionResolver) Resolve(input, requestedDir string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[requestedDir]
	if !exists || owner == input {
		cr.owners[requestedDir] = input
		return requestedDir
	}

	// Scan from 1 so a repeat claim finds the variant it already owns.
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_dup%d", requestedDir, counter)
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == input {
			cr.owners[candidate] = input
			return candidate
		}
	}
}

// ResolveJob applies Resolve to job's output directory.
func (cr *CollisionResolver) ResolveJob(job Job) Job {
	return job.WithOutputDir(cr.Resolve(job.InputPath, job.OutputDir))
}
