package converter

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merger concatenates PDFs in the given order into outPath.
type Merger interface {
	Merge(paths []string, outPath string) error
}

// PdfcpuMerger merges with pdfcpu's default configuration.
type PdfcpuMerger struct{}

func (PdfcpuMerger) Merge(paths []string, outPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("nothing to merge into %s", outPath)
	}
	return api.MergeCreateFile(paths, outPath, false, nil)
}
