package pdf

import (
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/billfold/internal/common"
)

// Page heights in points, used to tell merged pages apart.
const (
	a4Height = 841.89
	a5Height = 595.28
)

// writeTestPDF produces a PDF with the given number of pages in the
// given paper size, each carrying a distinct label.
func writeTestPDF(t *testing.T, path string, pages int, size, label string) {
	t.Helper()
	doc := gofpdf.New("P", "mm", size, "")
	doc.SetFont("Arial", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Cell(40, 10, label)
	}
	require.NoError(t, doc.OutputFileAndClose(path))
}

func pageCount(t *testing.T, path string) int {
	t.Helper()
	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	return n
}

// pageHeights returns the height of every page in order.
func pageHeights(t *testing.T, path string) []float64 {
	t.Helper()
	dims, err := api.PageDimsFile(path)
	require.NoError(t, err)
	heights := make([]float64, len(dims))
	for i, d := range dims {
		heights[i] = d.Height
	}
	return heights
}

func TestMerge_PreservesInputOrderAndPages(t *testing.T) {
	// File A has two A4 pages, file B one A5 page, so page order in
	// the output is observable from page dimensions.
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeTestPDF(t, a, 2, "A4", "file A")
	writeTestPDF(t, b, 1, "A5", "file B")

	c := NewConsolidator()
	require.NoError(t, c.Merge([]string{a, b}, out))

	heights := pageHeights(t, out)
	require.Len(t, heights, 3)
	assert.InDelta(t, a4Height, heights[0], 0.5)
	assert.InDelta(t, a4Height, heights[1], 0.5)
	assert.InDelta(t, a5Height, heights[2], 0.5)
	require.NoError(t, api.ValidateFile(out, nil))
}

func TestMerge_OrderFollowsInputsNotNames(t *testing.T) {
	// Reversing the input list reverses the page order, regardless of
	// how the file names sort.
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeTestPDF(t, a, 1, "A4", "file A")
	writeTestPDF(t, b, 1, "A5", "file B")

	c := NewConsolidator()
	require.NoError(t, c.Merge([]string{b, a}, out))

	heights := pageHeights(t, out)
	require.Len(t, heights, 2)
	assert.InDelta(t, a5Height, heights[0], 0.5)
	assert.InDelta(t, a4Height, heights[1], 0.5)
}

func TestMerge_SingleInput(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeTestPDF(t, a, 1, "A4", "only file")

	c := NewConsolidator()
	require.NoError(t, c.Merge([]string{a}, out))
	assert.Equal(t, 1, pageCount(t, out))
}

func TestMerge_RejectsEmptyInput(t *testing.T) {
	c := NewConsolidator()
	err := c.Merge(nil, filepath.Join(t.TempDir(), "out.pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoInputFiles)
}

func TestPlaceholder_ProducesSinglePage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "placeholder.pdf")

	c := NewConsolidator()
	require.NoError(t, c.Placeholder(out))

	assert.Equal(t, 1, pageCount(t, out))
	require.NoError(t, api.ValidateFile(out, nil))
}

func TestPlaceholder_OutputIsMergeable(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "p1.pdf")
	p2 := filepath.Join(dir, "p2.pdf")
	out := filepath.Join(dir, "out.pdf")

	c := NewConsolidator()
	require.NoError(t, c.Placeholder(p1))
	require.NoError(t, c.Placeholder(p2))
	require.NoError(t, c.Merge([]string{p1, p2}, out))
	assert.Equal(t, 2, pageCount(t, out))
}
