package converter

import "testing"

func TestNewOfficeConverterDefaults(t *testing.T) {
	c := NewOfficeConverter("", 0)
	if c.Binary != "libreoffice" {
		t.Errorf("Expected default binary libreoffice, got %s", c.Binary)
	}
	if cap(c.sem) != 1 {
		t.Errorf("Expected minimum parallelism 1, got %d", cap(c.sem))
	}

	c = NewOfficeConverter("soffice", 4)
	if c.Binary != "soffice" {
		t.Errorf("Expected soffice, got %s", c.Binary)
	}
	if cap(c.sem) != 4 {
		t.Errorf("Expected parallelism 4, got %d", cap(c.sem))
	}
}

func TestMergeRejectsEmptyInput(t *testing.T) {
	if err := (PdfcpuMerger{}).Merge(nil, "out.pdf"); err == nil {
		t.Fatal("Expected error for empty merge input")
	}
}
