package tag

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/contre95/playdir/src/features/playback"
	"github.com/contre95/playdir/src/media"
	"github.com/dhowden/tag"
)

// DefaultProbeSize is how much of a remote file is downloaded to find its tags.
const DefaultProbeSize = 256 * 1024

// RemoteTagReader reads embedded tags from media served over HTTP using the
// dhowden/tag library. Only the head of the file is downloaded, so formats that
// keep their metadata at the end of the file are reported as unreadable.
type RemoteTagReader struct {
	client    *http.Client
	userAgent string
	probeSize int64
}

// NewRemoteTagReader creates a new RemoteTagReader
func NewRemoteTagReader(userAgent string, timeout time.Duration) *RemoteTagReader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteTagReader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		probeSize: DefaultProbeSize,
	}
}

// ReadTags downloads the head of url and decodes its tags.
func (r *RemoteTagReader) ReadTags(ctx context.Context, url string) (*playback.TrackTags, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", r.probeSize-1))
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, r.probeSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	m, err := tag.ReadFrom(bytes.NewReader(head))
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	slog.Debug("Read remote tags", "url", url, "format", m.Format(), "bytes", len(head))

	trackNumber, _ := m.Track()
	tags := &playback.TrackTags{
		Title:    m.Title(),
		Artist:   m.Artist(),
		Album:    m.Album(),
		Genre:    m.Genre(),
		Year:     m.Year(),
		Track:    trackNumber,
		Format:   string(m.Format()),
		FileType: string(m.FileType()),
	}

	// Fall back to the file name like a player with no tags would show
	if strings.TrimSpace(tags.Title) == "" {
		tags.Title = media.Unescape(strings.TrimSuffix(path.Base(url), path.Ext(url)))
	}
	return tags, nil
}
