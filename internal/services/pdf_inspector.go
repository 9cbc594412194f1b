package services

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// DocumentInspector reads metadata from a stored upload without rejecting
// anything; callers treat errors as "unknown".
type DocumentInspector interface {
	PageCount(filePath string) (int, error)
}

type pdfInspector struct{}

func NewPDFInspector() DocumentInspector {
	return &pdfInspector{}
}

// PageCount implements DocumentInspector.
func (p *pdfInspector) PageCount(filePath string) (count int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}
