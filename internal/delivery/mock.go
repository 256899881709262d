package delivery

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Veraticus/billfold/internal/service"
)

// MockUploader is a mock implementation of Uploader for testing.
type MockUploader struct {
	// UploadFn can be set by tests to control behavior
	UploadFn func(ctx context.Context, path string) (string, error)

	mu sync.Mutex
	// UploadCalls records every uploaded path
	UploadCalls []string
}

// NewMockUploader creates a new mock uploader.
func NewMockUploader() *MockUploader {
	return &MockUploader{UploadCalls: []string{}}
}

// Upload implements Uploader.Upload. The default behavior returns a
// deterministic fake URL derived from the file name.
func (m *MockUploader) Upload(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	m.UploadCalls = append(m.UploadCalls, path)
	m.mu.Unlock()

	if m.UploadFn != nil {
		return m.UploadFn(ctx, path)
	}

	return fmt.Sprintf("https://cdn.example.com/%s", filepath.Base(path)), nil
}

// MockMailer is a mock implementation of Mailer for testing.
type MockMailer struct {
	// SendReportFn can be set by tests to control behavior
	SendReportFn func(requester string, attachments []string, urls []string) error

	// Call tracking
	SendReportCalls []SendReportCall
}

// SendReportCall records the parameters of a SendReport call.
type SendReportCall struct {
	Requester   string
	Attachments []string
	URLs        []string
}

// NewMockMailer creates a new mock mailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{SendReportCalls: []SendReportCall{}}
}

// SendReport implements Mailer.SendReport.
func (m *MockMailer) SendReport(requester string, attachments []string, urls []string) error {
	m.SendReportCalls = append(m.SendReportCalls, SendReportCall{
		Requester:   requester,
		Attachments: attachments,
		URLs:        urls,
	})

	if m.SendReportFn != nil {
		return m.SendReportFn(requester, attachments, urls)
	}

	return nil
}

// Ensure mocks implement the service interfaces.
var (
	_ service.Uploader = (*MockUploader)(nil)
	_ service.Mailer   = (*MockMailer)(nil)
)
