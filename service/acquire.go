package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"adscribe-server/models"
	"adscribe-server/store"
)

// Hostname suffixes that route a link through the platform downloader instead
// of a plain HTTP fetch.
var platformHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"bilibili.com",
}

func isPlatformURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(strings.TrimSpace(u.Hostname()))
	if host == "" {
		return false
	}
	for _, s := range platformHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

// acquireVideo resolves the project's source into a local media file and its
// duration in seconds. Any failure here is fatal to the run.
func (p *Pipeline) acquireVideo(ctx context.Context, project *models.Project, ws *Workspace) (string, int, error) {
	localPath, err := p.fetchVideo(ctx, project, ws)
	if err != nil {
		return "", 0, &AcquisitionError{Err: err}
	}

	duration := project.Duration
	if duration <= 0 {
		duration, err = p.tools.ProbeDuration(ctx, localPath)
		if err != nil {
			return "", 0, &AcquisitionError{Err: err}
		}
		// Link sources carry a placeholder duration until now; persist the
		// real one before sampling so pollers see it.
		if err := p.store.UpdateProject(ctx, project.ID, store.DurationUpdate{Seconds: duration}); err != nil {
			return "", 0, fmt.Errorf("persist duration: %w", err)
		}
		p.log.Info(ctx, "[project %s] Probed duration: %ds", project.ID, duration)
	}

	return localPath, duration, nil
}

func (p *Pipeline) fetchVideo(ctx context.Context, project *models.Project, ws *Workspace) (string, error) {
	src := project.VideoURL

	switch {
	case isPlatformURL(src):
		p.log.Info(ctx, "[project %s] Downloading from video platform: %s", project.ID, src)
		return p.tools.DownloadPlatform(ctx, src, ws.Dir)

	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		p.log.Info(ctx, "[project %s] Downloading video: %s", project.ID, src)
		localPath := ws.Path("video.mp4")
		if err := p.tools.DownloadDirect(ctx, src, localPath); err != nil {
			return "", err
		}
		return localPath, nil

	default:
		// Already a local path, nothing to fetch.
		return src, nil
	}
}
