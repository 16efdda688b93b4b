package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardSnapshot renders the dashboard to a file.
	TaskDashboardSnapshot = "dashboard:snapshot"
)

// Snapshot output formats.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// SnapshotPayload selects the snapshot output format.
type SnapshotPayload struct {
	Format string `json:"format"`
}

// ParseFormat normalises a snapshot format; empty selects PDF.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("snapshot: unsupported format %q", format)
	}
}

// NewSnapshotTask constructs a dashboard snapshot task.
func NewSnapshotTask(format string) (*asynq.Task, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(SnapshotPayload{Format: f})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardSnapshot, data), nil
}
