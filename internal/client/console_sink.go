package client

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-sync/models"
)

const consoleTimeLayout = "15:04:05"

// consoleSink prints sync status notifications, one line each.
type consoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	styles consoleStyles
	now    func() time.Time
}

func newConsoleSink(out io.Writer) *consoleSink {
	return &consoleSink{
		out:    out,
		styles: newConsoleStyles(out),
		now:    time.Now,
	}
}

func (s *consoleSink) OnSyncStarted() {
	s.print(s.styles.info.Render("sync started"), "")
}

func (s *consoleSink) OnSyncSkipped(reason models.SkipReason) {
	s.print(s.styles.skipped.Render("sync skipped"), reason.String())
}

func (s *consoleSink) OnSyncFinished(hasNewEvents bool) {
	detail := "up to date"
	if hasNewEvents {
		detail = "vault updated"
	}
	s.print(s.styles.success.Render("sync finished"), detail)
}

func (s *consoleSink) OnSyncFailed(err error) {
	s.print(s.styles.failure.Render("sync failed"), err.Error())
}

func (s *consoleSink) OnShareSyncFailed(shareID string, err error) {
	s.print(s.styles.failure.Render("share "+shareID+" failed"), err.Error())
}

func (s *consoleSink) OnAdditionalTaskFailed(label string, err error) {
	s.print(s.styles.failure.Render("task "+label+" failed"), err.Error())
}

func (s *consoleSink) print(headline, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.styles.time.Render(s.now().Format(consoleTimeLayout)) + " " + headline
	if detail != "" {
		line += " " + s.styles.detail.Render(detail)
	}
	_, _ = fmt.Fprintln(s.out, line)
}
