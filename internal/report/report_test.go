package report

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder("json2docx", "in", "out")

	var wg sync.WaitGroup
	for _, f := range []File{
		{Input: "in/c.json", Status: StatusFailed, Error: "bad"},
		{Input: "in/a.json", Status: StatusConverted},
		{Input: "in/b.json", Status: StatusSkipped},
		{Input: "in/d.json", Status: StatusConverted},
	} {
		wg.Add(1)
		go func(f File) {
			defer wg.Done()
			rec.Add(f)
		}(f)
	}
	wg.Wait()

	rep := rec.Finish()
	assert.Equal(t, 2, rep.Converted)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Files, 4)
	assert.Equal(t, "in/a.json", rep.Files[0].Input)
	assert.Equal(t, "in/d.json", rep.Files[3].Input)
	assert.False(t, rep.Finished.Before(rep.Started))
	assert.EqualError(t, rep.Err(), "json2docx: 1 of 4 files failed")
}

func TestReportErrNil(t *testing.T) {
	rec := NewRecorder("pdf2json", "in", "out")
	rec.Add(File{Input: "x.pdf", Status: StatusSkipped})
	assert.NoError(t, rec.Finish().Err())
}

func TestWriteFile(t *testing.T) {
	rec := NewRecorder("pdf2json", "pdfs", "json")
	rec.Add(File{Input: "pdfs/a.pdf", Output: "json/a.json", Status: StatusConverted, Detail: "12 elements"})
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, rec.Finish().WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "pdf2json", got.Command)
	assert.Equal(t, 1, got.Converted)
	require.Len(t, got.Files, 1)
	assert.Equal(t, StatusConverted, got.Files[0].Status)
	assert.Contains(t, string(data), "detail: 12 elements")
	assert.NotContains(t, string(data), "error:")
}
