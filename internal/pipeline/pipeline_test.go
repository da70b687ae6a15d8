package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/metrics"
	"github.com/backmassage/framegrab/internal/naming"
	"github.com/backmassage/framegrab/internal/planner"
	"github.com/backmassage/framegrab/internal/probe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func defaultProc() config.Processing {
	return config.Processing{
		IntervalSeconds: 0.5,
		OutputFormat:    config.FormatJPG,
		HDRMode:         config.HDRAuto,
		DolbyMode:       config.DolbyAuto,
		DateTag:         "0719",
	}
}

// fakeProber records requests and reports the requested part of res, or err.
type fakeProber struct {
	mu    sync.Mutex
	res   probe.Result
	err   error
	calls []probe.Request
}

func (f *fakeProber) Probe(_ context.Context, path string, req probe.Request) (probe.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return probe.Result{}, f.err
	}
	return probe.Result{
		IsHDR:         f.res.IsHDR && req.DetectHDR,
		HasDolbyAudio: f.res.HasDolbyAudio && req.DetectDolby,
	}, nil
}

// fakeExec records commands. It writes frames files through the output
// pattern and succeeds unless fail has an entry for the input path.
type fakeExec struct {
	frames int
	fail   map[string]ffmpeg.ExecResult
	hook   func()
	cmds   []ffmpeg.Command
}

func (f *fakeExec) Execute(_ context.Context, cmd ffmpeg.Command) ffmpeg.ExecResult {
	f.cmds = append(f.cmds, cmd)
	if f.hook != nil {
		f.hook()
	}
	input := cmd.Args[slices.Index(cmd.Args, "-i")+1]
	if res, ok := f.fail[input]; ok {
		return res
	}
	pattern := cmd.Args[len(cmd.Args)-1]
	for i := 1; i <= f.frames; i++ {
		_ = os.WriteFile(fmt.Sprintf(pattern, i), []byte("frame"), 0o644)
	}
	return ffmpeg.ExecResult{ExitCode: 0, Kind: ffmpeg.KindNone}
}

func failure(code int, stderr string) ffmpeg.ExecResult {
	return ffmpeg.ExecResult{
		ExitCode: code,
		Stderr:   stderr,
		Err:      fmt.Errorf("ffmpeg exited with status %d", code),
		Kind:     ffmpeg.ClassifyStderr(stderr),
	}
}

// recorder collects observer events.
type recorder struct {
	progress []Progress
	complete []Summary
}

func (r *recorder) observer() ObserverFuncs {
	return ObserverFuncs{
		Progress: func(p Progress) { r.progress = append(r.progress, p) },
		Complete: func(s Summary) { r.complete = append(r.complete, s) },
	}
}

func makeJobs(t *testing.T, names ...string) ([]naming.Job, string) {
	t.Helper()
	in, out := t.TempDir(), t.TempDir()
	var paths []string
	for _, n := range names {
		paths = append(paths, touch(t, in, n))
	}
	jobs, err := BuildJobs(paths, out, nil)
	require.NoError(t, err)
	return jobs, out
}

func newCoordinator(p probe.Prober, e Executor) *Coordinator {
	return &Coordinator{
		FFmpegPath: "ffmpeg",
		Prober:     p,
		Exec:       e,
		Log:        logging.Nop(),
		Metrics:    metrics.NewRecorder(),
	}
}

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"movie.mkv", "clip.mp4", "music.mp3", "readme.txt", "old.avi", "phone.3gp", "cover.jpg"} {
		touch(t, dir, n)
	}

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"clip.mp4", "movie.mkv", "old.avi", "phone.3gp"}, basenames(files))
}

func TestDiscover_AllVideoExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".3gp"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.ts")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, len(exts))
}

func TestDiscover_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.mkv")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	touch(t, filepath.Join(dir, "sub"), "nested.mkv")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.mp4"), 0o755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.mkv"}, basenames(files))
}

func TestDiscover_FollowsSymlinks(t *testing.T) {
	dir, elsewhere := t.TempDir(), t.TempDir()
	target := touch(t, elsewhere, "source.mkv")
	if err := os.Symlink(target, filepath.Join(dir, "linked.mkv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(dir, "folder.mp4")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "gone.mp4"), filepath.Join(dir, "dangling.mp4")))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"linked.mkv"}, basenames(files))
}

func TestDiscover_CaseInsensitiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.MKV")
	touch(t, dir, "a.Mp4")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.Mp4", "b.MKV"}, basenames(files))
}

func TestDiscover_Errors(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	files, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBuildJobs_Collisions(t *testing.T) {
	jobs, out := makeJobs(t, "clip.mkv", "clip.mp4", "other.mov")
	require.Len(t, jobs, 3)
	assert.Equal(t, filepath.Join(out, "clip"), jobs[0].OutputDir)
	assert.Equal(t, filepath.Join(out, "clip_dup1"), jobs[1].OutputDir)
	assert.Equal(t, "clip", jobs[1].BaseName)
	assert.Equal(t, filepath.Join(out, "other"), jobs[2].OutputDir)
}

func TestBuildJobs_SharedResolver(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	resolver := naming.NewCollisionResolver()

	first, err := BuildJobs([]string{touch(t, in, "clip.mkv")}, out, resolver)
	require.NoError(t, err)
	later, err := BuildJobs([]string{touch(t, in, "clip.mp4")}, out, resolver)
	require.NoError(t, err)
	again, err := BuildJobs([]string{first[0].InputPath}, out, resolver)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "clip_dup1"), later[0].OutputDir)
	assert.Equal(t, first[0].OutputDir, again[0].OutputDir, "rewritten file keeps its directory")
}

// --- Coordinator tests ---

func TestRun_SecondVideoMissing(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4", "b.mp4")
	exec := &fakeExec{
		frames: 1,
		fail: map[string]ffmpeg.ExecResult{
			jobs[1].InputPath: failure(1, jobs[1].InputPath+": No such file or directory"),
		},
	}
	rec := &recorder{}
	c := newCoordinator(&fakeProber{}, exec)

	s, err := c.Run(context.Background(), jobs, defaultProc(), rec.observer())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Succeeded)
	require.Len(t, s.Failures, 1)
	assert.Equal(t, ffmpeg.KindMissingFile, s.Failures[0].ErrorKind)
	assert.Equal(t, jobs[1], s.Failures[0].Job)
	assert.Contains(t, s.Failures[0].RawMessage, "No such file or directory")
	assert.NotEmpty(t, s.RunID)

	require.Len(t, rec.progress, 2)
	assert.Equal(t, 1, rec.progress[0].Processed)
	assert.Equal(t, 2, rec.progress[1].Processed)
	assert.Equal(t, 2, rec.progress[1].Total)
	require.Len(t, rec.complete, 1)
	assert.Equal(t, s.Succeeded, rec.complete[0].Succeeded)

	n, err := testutil.GatherAndCount(c.Metrics.Registry(), "framegrab_jobs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per result/kind pair")
}

func TestRun_HDRTrueHDEndToEnd(t *testing.T) {
	jobs, out := makeJobs(t, "movie.mkv")
	text := &probe.TextProber{
		FFmpegPath: "ffmpeg",
		Run: func(context.Context, string, ...string) ([]byte, []byte, error) {
			return nil, []byte("Stream #0:0: Video: hevc, yuv420p10le, HDR10\nStream #0:1: Audio: TrueHD"), nil
		},
	}
	exec := &fakeExec{frames: 2}
	c := newCoordinator(text, exec)

	s, err := c.Run(context.Background(), jobs, defaultProc(), nil)
	require.NoError(t, err)
	require.True(t, s.OK())

	require.Len(t, exec.cmds, 1)
	args := exec.cmds[0].Args
	assert.Contains(t, args, planner.ToneMapChain(0.5))
	assert.Equal(t, []string{"-map", "0:v:0", "-an"}, args[slices.Index(args, "-map"):slices.Index(args, "-map")+3])
	assert.Equal(t, "2", args[slices.Index(args, "-q:v")+1])

	o := s.Outcomes[0]
	assert.True(t, o.ToneMapped)
	assert.True(t, o.AudioRemoved)
	assert.Equal(t, 2, o.Frames)
	assert.FileExists(t, filepath.Join(out, "movie", "movie_0001_0719.jpg"))
	assert.FileExists(t, filepath.Join(out, "movie", "movie_0002_0719.jpg"))
	assert.Equal(t, 2, s.TotalFrames)
}

func TestRun_HDRNoneNeverProbesHDR(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4")

	t.Run("dolby auto probes dolby only", func(t *testing.T) {
		p := &fakeProber{}
		proc := defaultProc()
		proc.HDRMode = config.HDRNone
		_, err := newCoordinator(p, &fakeExec{}).Run(context.Background(), jobs, proc, nil)
		require.NoError(t, err)
		require.Len(t, p.calls, 1)
		assert.False(t, p.calls[0].DetectHDR)
	})

	t.Run("dolby keep skips the probe", func(t *testing.T) {
		p := &fakeProber{}
		proc := defaultProc()
		proc.HDRMode = config.HDRNone
		proc.DolbyMode = config.DolbyKeep
		c := newCoordinator(p, &fakeExec{})
		_, err := c.Run(context.Background(), jobs, proc, nil)
		require.NoError(t, err)
		assert.Empty(t, p.calls)
	})
}

func TestRun_ProbeRequests(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4")
	tests := []struct {
		hdr   config.HDRMode
		dolby config.DolbyMode
		want  []probe.Request
	}{
		{config.HDRForce, config.DolbyKeep, []probe.Request{{DetectHDR: true}}},
		{config.HDRForce, config.DolbyRemove, []probe.Request{{DetectHDR: true, DetectDolby: true}}},
		{config.HDRNone, config.DolbyRemove, []probe.Request{{DetectDolby: true}}},
		{config.HDRForce, config.DolbyAuto, []probe.Request{{DetectHDR: true, DetectDolby: true}}},
		{config.HDRNone, config.DolbyKeep, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.hdr)+"/"+string(tt.dolby), func(t *testing.T) {
			p := &fakeProber{}
			proc := defaultProc()
			proc.HDRMode, proc.DolbyMode = tt.hdr, tt.dolby
			_, err := newCoordinator(p, &fakeExec{}).Run(context.Background(), jobs, proc, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.calls)
		})
	}
}

func TestRun_ForceKeepLogsDetection(t *testing.T) {
	jobs, _ := makeJobs(t, "movie.mkv")
	var buf bytes.Buffer
	exec := &fakeExec{frames: 1}
	c := newCoordinator(&fakeProber{res: probe.Result{IsHDR: true, HasDolbyAudio: true}}, exec)
	c.Log = logging.New(&buf, false)

	proc := defaultProc()
	proc.HDRMode, proc.DolbyMode = config.HDRForce, config.DolbyKeep
	s, err := c.Run(context.Background(), jobs, proc, nil)
	require.NoError(t, err)

	assert.True(t, s.Outcomes[0].ToneMapped)
	assert.False(t, s.Outcomes[0].AudioRemoved)
	assert.NotContains(t, exec.cmds[0].Args, "-an")
	assert.Contains(t, buf.String(), "HDR detected")
	assert.NotContains(t, buf.String(), "Dolby audio detected", "keep does not inspect audio")
}

func TestRun_ProbeFailureIsSwallowed(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mkv")
	exec := &fakeExec{frames: 1}
	c := newCoordinator(&fakeProber{err: errors.New("ffmpeg vanished")}, exec)

	s, err := c.Run(context.Background(), jobs, defaultProc(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Succeeded)
	assert.False(t, s.Outcomes[0].ToneMapped)
	assert.False(t, s.Outcomes[0].AudioRemoved)
	assert.Equal(t, "fps=1/0.5", exec.cmds[0].Args[slices.Index(exec.cmds[0].Args, "-vf")+1])
}

func TestRun_Preflight(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mkv")

	t.Run("invalid interval", func(t *testing.T) {
		exec := &fakeExec{}
		proc := defaultProc()
		proc.IntervalSeconds = 0
		rec := &recorder{}

		_, err := newCoordinator(&fakeProber{}, exec).Run(context.Background(), jobs, proc, rec.observer())
		var pe *PreflightError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "config", pe.Stage)
		assert.ErrorIs(t, err, config.ErrInvalidInterval)
		assert.Empty(t, exec.cmds)
		assert.Empty(t, rec.progress)
		assert.Empty(t, rec.complete)
	})

	t.Run("tool unavailable", func(t *testing.T) {
		exec := &fakeExec{}
		p := &fakeProber{}
		c := newCoordinator(p, exec)
		sentinel := errors.New("not found")
		c.CheckTool = func(context.Context, string) (string, error) { return "", sentinel }

		_, err := c.Run(context.Background(), jobs, defaultProc(), nil)
		var pe *PreflightError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "tool", pe.Stage)
		assert.ErrorIs(t, err, sentinel)
		assert.Empty(t, exec.cmds)
		assert.Empty(t, p.calls)
	})
}

func TestRun_CancelBetweenJobs(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4", "b.mp4", "c.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec := &fakeExec{frames: 1, hook: cancel}

	s, err := newCoordinator(&fakeProber{}, exec).Run(ctx, jobs, defaultProc(), nil)
	require.NoError(t, err)

	assert.Len(t, exec.cmds, 1, "no job starts after cancellation")
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Succeeded)
	require.Len(t, s.Failures, 2)
	for _, f := range s.Failures {
		assert.Equal(t, ffmpeg.KindCancelled, f.ErrorKind)
	}
	assert.Equal(t, s.Total, s.Succeeded+len(s.Failures))
}

func TestRun_DryRun(t *testing.T) {
	jobs, out := makeJobs(t, "a.mp4")
	exec := &fakeExec{}
	c := newCoordinator(&fakeProber{}, exec)
	c.DryRun = true

	s, err := c.Run(context.Background(), jobs, defaultProc(), nil)
	require.NoError(t, err)
	assert.Empty(t, exec.cmds)
	assert.True(t, s.Outcomes[0].DryRun)
	assert.Equal(t, 1, s.Succeeded)
	assert.NoDirExists(t, filepath.Join(out, "a"))
}

func TestRun_SkipExisting(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4", "b.mp4")
	require.NoError(t, os.MkdirAll(jobs[0].OutputDir, 0o755))
	touch(t, jobs[0].OutputDir, "a_0001_0719.jpg")

	exec := &fakeExec{frames: 1}
	c := newCoordinator(&fakeProber{}, exec)
	c.SkipExisting = true

	s, err := c.Run(context.Background(), jobs, defaultProc(), nil)
	require.NoError(t, err)
	require.Len(t, exec.cmds, 1)
	args := exec.cmds[0].Args
	assert.Equal(t, jobs[1].InputPath, args[slices.Index(args, "-i")+1])
	assert.True(t, s.Outcomes[0].Skipped)
	assert.Equal(t, 2, s.Succeeded)
}

func TestRun_OutputDirFailure(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	jobs[0] = jobs[0].WithOutputDir(filepath.Join(blocker, "a"))

	exec := &fakeExec{}
	s, err := newCoordinator(&fakeProber{}, exec).Run(context.Background(), jobs, defaultProc(), nil)
	require.NoError(t, err)
	assert.Empty(t, exec.cmds)
	require.Len(t, s.Failures, 1)
	assert.Equal(t, ffmpeg.KindUnknown, s.Failures[0].ErrorKind)
}

func TestRun_EmptyBatch(t *testing.T) {
	rec := &recorder{}
	s, err := newCoordinator(&fakeProber{}, &fakeExec{}).Run(context.Background(), nil, defaultProc(), rec.observer())
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.True(t, s.OK())
	assert.Len(t, rec.complete, 1)
}

func TestRun_ChannelObserver(t *testing.T) {
	jobs, _ := makeJobs(t, "a.mp4", "b.mp4")
	obs := NewChannelObserver(0)

	var got []Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range obs.Events() {
			got = append(got, ev)
		}
	}()

	_, err := newCoordinator(&fakeProber{}, &fakeExec{frames: 1}).Run(context.Background(), jobs, defaultProc(), obs)
	require.NoError(t, err)
	obs.Close()
	obs.Close()
	<-done

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Progress.Processed)
	assert.Equal(t, 2, got[1].Progress.Processed)
	require.NotNil(t, got[2].Summary)
	assert.Equal(t, 2, got[2].Summary.Succeeded)
}

func TestSummary_Merge(t *testing.T) {
	t0 := time.Date(2026, 7, 19, 10, 0, 0, 0, time.UTC)
	var total Summary

	first := Summary{RunID: "a", Started: t0, Finished: t0.Add(time.Minute), Total: 2}
	first.record(JobOutcome{Success: true, Frames: 3, FrameBytes: 30})
	first.record(JobOutcome{ErrorKind: ffmpeg.KindMissingFile})
	total.Merge(first)

	second := Summary{RunID: "b", Started: t0.Add(time.Hour), Finished: t0.Add(2 * time.Hour), Total: 1}
	second.record(JobOutcome{Success: true, Frames: 2, FrameBytes: 20})
	total.Merge(second)

	assert.Equal(t, "a", total.RunID)
	assert.Equal(t, t0, total.Started)
	assert.Equal(t, t0.Add(2*time.Hour), total.Finished)
	assert.Equal(t, 3, total.Total)
	assert.Equal(t, 2, total.Succeeded)
	assert.Len(t, total.Failures, 1)
	assert.Len(t, total.Outcomes, 3)
	assert.Equal(t, 5, total.TotalFrames)
	assert.Equal(t, int64(50), total.TotalFrameBytes)
	assert.Equal(t, total.Total, total.Succeeded+len(total.Failures))
}

// --- Report tests ---

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	s := Summary{
		RunID:     "run-1",
		Total:     2,
		Succeeded: 1,
		Failures: []JobOutcome{{
			Job:        naming.Job{InputPath: "/in/b.mp4", BaseName: "b", OutputDir: "/out/b"},
			ErrorKind:  ffmpeg.KindMissingFile,
			RawMessage: "No such file or directory",
			Duration:   1500 * time.Millisecond,
		}},
	}
	require.NoError(t, WriteReport(path, s))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(b, &doc))
	assert.Equal(t, "run-1", doc["run_id"])
	assert.Equal(t, 2, doc["total"])
	assert.True(t, strings.Contains(string(b), "error_kind: missing_file"))
	assert.True(t, strings.Contains(string(b), "input: /in/b.mp4"))
	assert.True(t, strings.Contains(string(b), "duration: 1.5s"))
}

func TestWriteReport_MultiByteMessage(t *testing.T) {
	res := ffmpeg.ExecResult{
		ExitCode: 1,
		Stderr:   strings.Repeat("视", 2000) + "xx",
		Err:      errors.New("exit status 1"),
	}
	path := filepath.Join(t.TempDir(), "report.yaml")
	s := Summary{Total: 1, Failures: []JobOutcome{{ErrorKind: ffmpeg.KindUnknown, RawMessage: res.Message()}}}
	require.NoError(t, WriteReport(path, s))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "!!binary")
	assert.Contains(t, string(b), "视xx")
}

func TestWriteReport_BadDir(t *testing.T) {
	assert.Error(t, WriteReport(filepath.Join(t.TempDir(), "missing", "r.yaml"), Summary{}))
}

// --- Watch tests ---

func TestWatch_HandlesSettledVideos(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, dir, 50*time.Millisecond, logging.Nop(), func(p string) { got <- p })
	}()

	// Give the watcher time to register before creating files.
	time.Sleep(100 * time.Millisecond)
	touch(t, dir, "notes.txt")
	video := touch(t, dir, "new.mp4")

	select {
	case p := <-got:
		assert.Equal(t, video, p)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the new video")
	}

	cancel()
	require.NoError(t, <-errc)
	assert.Empty(t, got, "non-video files are ignored")
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), time.Millisecond, nil, func(string) {})
	assert.Error(t, err)
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.mp4": now.Add(-3 * time.Second),
		"a.mp4": now.Add(-2 * time.Second),
		"c.mp4": now,
	}
	assert.Equal(t, []string{"a.mp4", "b.mp4"}, settled(pending, now, 2*time.Second))
}
