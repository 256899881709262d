// Package pipeline drives the invoice collection and consolidation flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Veraticus/billfold/internal/model"
	"github.com/Veraticus/billfold/internal/scratch"
	"github.com/Veraticus/billfold/internal/service"
)

// AccountSource pairs a configured account key with the invoice lister
// bound to that account's credentials.
type AccountSource struct {
	Lister service.InvoiceLister
	Key    string
}

// Orchestrator runs the pipeline for every configured account in
// configuration order and collects the consolidated output files.
type Orchestrator struct {
	fetcher      service.FileFetcher
	consolidator service.Consolidator
	logger       *slog.Logger
	scratchRoot  string
	accounts     []AccountSource
}

// NewOrchestrator creates a pipeline orchestrator.
func NewOrchestrator(accounts []AccountSource, fetcher service.FileFetcher, consolidator service.Consolidator, scratchRoot string) *Orchestrator {
	return &Orchestrator{
		accounts:     accounts,
		fetcher:      fetcher,
		consolidator: consolidator,
		scratchRoot:  scratchRoot,
		logger:       slog.Default().With("component", "pipeline"),
	}
}

// Run processes every account and both categories for the period and
// returns the consolidated file paths: always exactly two per account,
// in account-then-category order. Scratch directories are named by
// account and category, not by request, so concurrent runs over the
// same accounts are not isolated from each other.
func (o *Orchestrator) Run(ctx context.Context, period model.Period) ([]string, error) {
	outDir := filepath.Join(o.scratchRoot, "out")
	if err := scratch.Stage(outDir); err != nil {
		return nil, err
	}

	gte, lte := period.Range()
	outputs := make([]string, 0, 2*len(o.accounts))

	for _, account := range o.accounts {
		set, err := account.Lister.ListInvoices(ctx, gte, lte)
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices for account %s: %w", account.Key, err)
		}

		for _, cat := range model.Categories() {
			links := set.Links(cat)
			o.logger.Info("Consolidating category",
				"account", account.Key,
				"category", cat,
				"invoices", len(links),
				"total_amount", set.Total(cat))

			out := filepath.Join(outDir, model.OutputName(account.Key, cat, period))
			if err := o.consolidate(ctx, account.Key, cat, links, out); err != nil {
				return nil, err
			}
			outputs = append(outputs, out)
		}
	}

	return outputs, nil
}

// consolidate downloads a category's PDFs and produces its one output
// file: a merge of whatever survived the best-effort downloads, or the
// placeholder when there was nothing to merge.
func (o *Orchestrator) consolidate(ctx context.Context, accountKey string, cat model.Category, links []model.InvoiceLink, out string) error {
	dir := filepath.Join(o.scratchRoot, fmt.Sprintf("%s-%s", accountKey, cat))
	if err := scratch.Stage(dir); err != nil {
		return err
	}

	survivors := o.download(ctx, dir, links)

	if len(survivors) == 0 {
		if len(links) > 0 {
			o.logger.Warn("Every download in category was dropped, falling back to placeholder",
				"account", accountKey,
				"category", cat,
				"invoices", len(links))
		}
		if err := o.consolidator.Placeholder(out); err != nil {
			return fmt.Errorf("failed to write placeholder for %s/%s: %w", accountKey, cat, err)
		}
		return nil
	}

	if err := o.consolidator.Merge(survivors, out); err != nil {
		return fmt.Errorf("failed to merge %s/%s: %w", accountKey, cat, err)
	}
	return nil
}

// download fans out every fetch concurrently, waits for all of them to
// settle, and returns the surviving file paths in invoice-list order.
// Dropped downloads are already logged by the fetcher and simply
// missing here. The only cap on in-flight downloads is the fetcher's
// shared rate ceiling.
func (o *Orchestrator) download(ctx context.Context, dir string, links []model.InvoiceLink) []string {
	results := make([]service.FetchResult, len(links))

	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link model.InvoiceLink) {
			defer wg.Done()
			results[i] = o.fetcher.Fetch(ctx, link.PDFURL, filepath.Join(dir, link.FileName()))
		}(i, link)
	}
	wg.Wait()

	survivors := make([]string, 0, len(links))
	for _, r := range results {
		if !r.Dropped {
			survivors = append(survivors, r.Path)
		}
	}
	return survivors
}
