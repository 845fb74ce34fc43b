package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	rpdf "rsc.io/pdf"
)

// PDFInfo is what preflight learns about a PDF before it is uploaded.
type PDFInfo struct {
	Pages int
	Size  int64
}

// Inspector checks that a file is a readable PDF.
type Inspector interface {
	Inspect(path string) (PDFInfo, error)
}

// PDFInspector validates with pdfcpu and counts pages with rsc.io/pdf,
// falling back to pdfcpu's count when rsc.io/pdf cannot parse the file.
type PDFInspector struct {
	// Strict selects pdfcpu's strict validation mode.
	Strict bool
}

// StatInspector only checks that the file exists and is not empty. It is
// used when preflight is skipped and leaves Pages at zero.
type StatInspector struct{}

func (StatInspector) Inspect(path string) (PDFInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return PDFInfo{}, err
	}
	if st.Size() == 0 {
		return PDFInfo{}, errors.New("empty file")
	}
	return PDFInfo{Size: st.Size()}, nil
}

var disablePDFCPUConfig sync.Once

func (p PDFInspector) Inspect(path string) (PDFInfo, error) {
	info, err := StatInspector{}.Inspect(path)
	if err != nil {
		return info, err
	}

	disablePDFCPUConfig.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if p.Strict {
		conf.ValidationMode = model.ValidationStrict
	}
	if err := api.ValidateFile(path, conf); err != nil {
		return info, fmt.Errorf("not a valid PDF: %w", err)
	}

	if n, err := pageCount(path, info.Size); err == nil {
		info.Pages = n
		return info, nil
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return info, fmt.Errorf("count pages: %w", err)
	}
	info.Pages = n
	return info, nil
}

func pageCount(path string, size int64) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// rsc.io/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read %s: %v", path, r)
		}
	}()
	return rscPageCount(f, size)
}

var rscPageCount = func(r io.ReaderAt, size int64) (int, error) {
	doc, err := rpdf.NewReader(r, size)
	if err != nil {
		return 0, err
	}
	return doc.NumPage(), nil
}
