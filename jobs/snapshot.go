package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/globalwealth/wealthdash/internal/jobs"
)

// PageRenderer writes the dashboard HTML.
type PageRenderer interface {
	Render(w io.Writer) error
}

// PDFRenderer produces the dashboard PDF.
type PDFRenderer interface {
	RenderDashboard(ctx context.Context) ([]byte, error)
}

// SnapshotConfig wires dependencies required by the snapshot job.
type SnapshotConfig struct {
	Pages   PageRenderer
	PDF     PDFRenderer
	Dir     string
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// SnapshotJob writes dashboard snapshots to disk.
type SnapshotJob struct {
	pages   PageRenderer
	pdf     PDFRenderer
	dir     string
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
	newID   func() string
}

// NewSnapshotJob constructs a SnapshotJob.
func NewSnapshotJob(cfg SnapshotConfig) *SnapshotJob {
	return &SnapshotJob{
		pages:   cfg.Pages,
		pdf:     cfg.PDF,
		dir:     cfg.Dir,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		newID:   func() string { return uuid.NewString() },
	}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *SnapshotJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil {
		return errors.New("snapshot: job not configured")
	}
	var payload SnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("snapshot: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	format, err := ParseFormat(payload.Format)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	_, err = j.Run(ctx, format)
	return err
}

// Run renders one snapshot in the given format and returns the written path.
func (j *SnapshotJob) Run(ctx context.Context, format string) (path string, err error) {
	tracker := j.metrics.Track(TaskDashboardSnapshot)
	defer func() {
		err = tracker.End(err)
	}()

	data, err := j.render(ctx, format)
	if err != nil {
		j.logError("render snapshot", format, err)
		return "", err
	}
	path, err = j.save(format, data)
	if err != nil {
		j.logError("save snapshot", format, err)
		return "", err
	}
	j.metrics.AddSnapshotBytes(format, len(data))
	if j.logger != nil {
		j.logger.Info("dashboard snapshot ready", slog.String("format", format), slog.String("file", path), slog.Int("bytes", len(data)))
	}
	return path, nil
}

func (j *SnapshotJob) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatHTML:
		if j.pages == nil {
			return nil, errors.New("snapshot: page renderer missing")
		}
		var buf bytes.Buffer
		if err := j.pages.Render(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatPDF:
		if j.pdf == nil {
			return nil, errors.New("snapshot: pdf renderer missing")
		}
		return j.pdf.RenderDashboard(ctx)
	default:
		return nil, fmt.Errorf("snapshot: unsupported format %q", format)
	}
}

func (j *SnapshotJob) save(format string, data []byte) (string, error) {
	dir := j.dir
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join(os.TempDir(), "wealthdash-snapshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("wealth-dashboard-%s.%s", j.newID(), format)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (j *SnapshotJob) logError(msg, format string, err error) {
	if j.logger != nil {
		j.logger.Error(msg, slog.String("format", format), slog.Any("error", err))
	}
}
