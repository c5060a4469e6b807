package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/pkg/errors"
)

const summaryDelimiter = "============================================================"

// SummaryLog appends human-readable call summary blocks. The block layout
// matches the legacy call_summaries.log format.
type SummaryLog struct {
	mu   sync.Mutex
	path string
}

func NewSummaryLog(path string) *SummaryLog {
	return &SummaryLog{path: path}
}

func (l *SummaryLog) Append(ctx context.Context, entry *model.CallSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(summaryDelimiter + "\n")
	fmt.Fprintf(&b, "CALL SUMMARY — %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "CALL ID: %s\n", entry.CallID)
	b.WriteString("------------------------------------------------------------\n")
	b.WriteString(entry.Text + "\n")
	b.WriteString(summaryDelimiter + "\n")

	fd, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Storage("failed to open call summary log", err)
	}
	defer fd.Close()

	if _, err := fd.WriteString(b.String()); err != nil {
		return errors.Storage("failed to append call summary", err)
	}
	return nil
}
