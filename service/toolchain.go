package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"adscribe-server/pkg/executor"
)

// Per-invocation timeouts. Downloads are minutes-scale because source videos
// can be large; everything else is seconds-scale.
const (
	probeTimeout     = 15 * time.Second
	extractTimeout   = 30 * time.Second
	platformTimeout  = 10 * time.Minute
	directTimeout    = 5 * time.Minute
	concatTimeout    = 2 * time.Minute
	transcodeTimeout = 2 * time.Minute
)

// Toolchain abstracts the external media tooling (ffmpeg, ffprobe, yt-dlp).
// All invocations build structured argument lists and carry their own timeout.
type Toolchain interface {
	// ProbeDuration returns the duration of a local media file in whole seconds.
	ProbeDuration(ctx context.Context, path string) (int, error)
	// ExtractFrame writes a single still image taken at the given timestamp.
	ExtractFrame(ctx context.Context, videoPath string, timestampSec int, outPath string) error
	// DownloadPlatform fetches a video-platform URL into destDir at bounded
	// quality and returns the path of the produced file.
	DownloadPlatform(ctx context.Context, videoURL, destDir string) (string, error)
	// DownloadDirect streams a plain HTTP(S) URL to a local file.
	DownloadDirect(ctx context.Context, videoURL, outPath string) error
	// ConcatAudio losslessly concatenates the given audio files in order.
	ConcatAudio(ctx context.Context, files []string, outPath string) error
	// TranscodeWAV converts an audio file to 16-bit PCM WAV at 44.1 kHz.
	TranscodeWAV(ctx context.Context, inPath, outPath string) error
}

type mediaToolchain struct {
	exec executor.Executor
	http *http.Client
}

// NewToolchain creates the ffmpeg-based Toolchain implementation.
func NewToolchain(exec executor.Executor) Toolchain {
	return &mediaToolchain{
		exec: exec,
		http: &http.Client{},
	}
}

func (t *mediaToolchain) ProbeDuration(ctx context.Context, path string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := t.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid duration %q from ffprobe", strings.TrimSpace(out))
	}
	return int(seconds), nil
}

func (t *mediaToolchain) ExtractFrame(ctx context.Context, videoPath string, timestampSec int, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	if _, err := t.exec.Execute(ctx, "ffmpeg",
		"-ss", strconv.Itoa(timestampSec),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-y",
		outPath,
	); err != nil {
		return fmt.Errorf("ffmpeg extract frame at %ds: %w", timestampSec, err)
	}

	// ffmpeg exits zero on a seek past the end of stream; it just writes nothing.
	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("frame at %ds not produced: %w", timestampSec, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("frame at %ds is empty", timestampSec)
	}
	return nil
}

func (t *mediaToolchain) DownloadPlatform(ctx context.Context, videoURL, destDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, platformTimeout)
	defer cancel()

	outPattern := filepath.Join(destDir, "video.%(ext)s")
	if _, err := t.exec.Execute(ctx, "yt-dlp",
		"-f", "best[height<=720]",
		"--no-playlist",
		"-o", outPattern,
		videoURL,
	); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(destDir, "video.*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no video file produced by yt-dlp in %s", destDir)
	}
	return matches[0], nil
}

func (t *mediaToolchain) DownloadDirect(ctx context.Context, videoURL, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, directTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download video: status %d", resp.StatusCode)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create video file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write video file: %w", err)
	}
	return nil
}

func (t *mediaToolchain) ConcatAudio(ctx context.Context, files []string, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, concatTimeout)
	defer cancel()

	listPath := filepath.Join(filepath.Dir(outPath), "filelist.txt")
	if err := writeConcatList(listPath, files); err != nil {
		return err
	}

	if _, err := t.exec.Execute(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outPath,
	); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

func (t *mediaToolchain) TranscodeWAV(ctx context.Context, inPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, transcodeTimeout)
	defer cancel()

	if _, err := t.exec.Execute(ctx, "ffmpeg",
		"-i", inPath,
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-y",
		outPath,
	); err != nil {
		return fmt.Errorf("ffmpeg transcode wav: %w", err)
	}
	return nil
}

// writeConcatList renders the ffmpeg concat demuxer file list.
func writeConcatList(listPath string, files []string) error {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "file '%s'\n", f)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}
