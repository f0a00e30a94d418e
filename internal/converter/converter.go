// Package converter wraps the external tools that turn rendered statement
// workbooks into the final PDF bundle: a headless office suite for the
// spreadsheet→PDF conversion and pdfcpu for merging.
package converter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrConversion wraps any converter failure: non-zero exit or missing output.
var ErrConversion = errors.New("spreadsheet conversion failed")

// Converter turns a spreadsheet into a PDF in outDir and returns the PDF
// path.
type Converter interface {
	Convert(inputPath, outDir string) (string, error)
}

// OfficeConverter shells out to a headless LibreOffice. One subprocess per
// file; maxParallel bounds concurrent invocations so a burst of export jobs
// cannot fork an unbounded number of office processes.
type OfficeConverter struct {
	Binary string
	sem    chan struct{}
}

func NewOfficeConverter(binary string, maxParallel int) *OfficeConverter {
	if binary == "" {
		binary = "libreoffice"
	}
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &OfficeConverter{
		Binary: binary,
		sem:    make(chan struct{}, maxParallel),
	}
}

func (c *OfficeConverter) Convert(inputPath, outDir string) (string, error) {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	cmd := exec.Command(c.Binary, "--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.WithFields(log.Fields{"input": inputPath, "output": strings.TrimSpace(string(out))}).
			Error("converter subprocess failed")
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%w: output %s not produced", ErrConversion, pdfPath)
	}
	return pdfPath, nil
}
