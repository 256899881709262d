// Package pdf consolidates downloaded invoice PDFs into per-category output files.
package pdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Veraticus/billfold/internal/common"
	"github.com/Veraticus/billfold/internal/service"
)

// PlaceholderNotice is the text of the single-page PDF produced when a
// category had no invoices to merge.
const PlaceholderNotice = "No invoices were available for this period."

// Consolidator implements the service.Consolidator contract.
type Consolidator struct{}

// NewConsolidator creates a PDF consolidator.
func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Merge writes every page of every input file to out, input-file order
// preserved, page order within each file preserved. At least one input
// is required; callers route empty sets to Placeholder instead.
func (c *Consolidator) Merge(inputs []string, out string) error {
	if len(inputs) == 0 {
		return common.ErrNoInputFiles
	}
	if err := api.MergeCreateFile(inputs, out, false, nil); err != nil {
		return fmt.Errorf("failed to merge %d files into %s: %w", len(inputs), out, err)
	}
	return nil
}

// Placeholder writes a single-page PDF carrying the fixed notice to
// out, so every expected output file exists regardless of data
// availability.
func (c *Consolidator) Placeholder(out string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "B", 16)
	doc.Cell(40, 10, PlaceholderNotice)
	if err := doc.OutputFileAndClose(out); err != nil {
		return fmt.Errorf("failed to write placeholder %s: %w", out, err)
	}
	return nil
}

// Ensure Consolidator implements the service contract.
var _ service.Consolidator = (*Consolidator)(nil)
