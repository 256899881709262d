package delivery

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/billfold/internal/service"
)

// Stage uploads consolidated files and sends the two report emails.
type Stage struct {
	uploader service.Uploader
	mailer   service.Mailer
}

// NewStage creates the delivery stage.
func NewStage(uploader service.Uploader, mailer service.Mailer) *Stage {
	return &Stage{uploader: uploader, mailer: mailer}
}

// Deliver uploads every file and then sends both emails. URLs are
// collected in file order regardless of upload completion order. Any
// upload or send failure aborts the whole delivery.
func (s *Stage) Deliver(ctx context.Context, files []string, requester string) error {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			url, err := s.uploader.Upload(ctx, path)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if err := s.mailer.SendReport(requester, files, urls); err != nil {
		return err
	}
	return nil
}
