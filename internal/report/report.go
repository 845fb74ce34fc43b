// Package report records what a conversion run did to each file and writes
// the summary as YAML.
package report

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is the outcome for one input file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
	StatusPlanned   Status = "planned"
)

// File is one input and what happened to it.
type File struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Status Status `yaml:"status"`
	Detail string `yaml:"detail,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Report summarises a run.
type Report struct {
	Command   string    `yaml:"command"`
	InputDir  string    `yaml:"input_dir"`
	OutputDir string    `yaml:"output_dir"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
	Converted int       `yaml:"converted"`
	Skipped   int       `yaml:"skipped"`
	Failed    int       `yaml:"failed"`
	Planned   int       `yaml:"planned,omitempty"`
	Files     []File    `yaml:"files"`
}

// Recorder collects File outcomes from concurrent workers.
type Recorder struct {
	mu  sync.Mutex
	rep Report
}

// NewRecorder starts a report for command.
func NewRecorder(command, inputDir, outputDir string) *Recorder {
	return &Recorder{rep: Report{
		Command:   command,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Started:   time.Now(),
	}}
}

// Add records one file.
func (r *Recorder) Add(f File) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch f.Status {
	case StatusConverted:
		r.rep.Converted++
	case StatusSkipped:
		r.rep.Skipped++
	case StatusFailed:
		r.rep.Failed++
	case StatusPlanned:
		r.rep.Planned++
	}
	r.rep.Files = append(r.rep.Files, f)
}

// Finish stamps the finish time and returns the report with files in input
// order.
func (r *Recorder) Finish() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := r.rep
	rep.Finished = time.Now()
	rep.Files = append([]File(nil), r.rep.Files...)
	sort.SliceStable(rep.Files, func(i, j int) bool { return rep.Files[i].Input < rep.Files[j].Input })
	return rep
}

// Err returns an error when any file failed.
func (r Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%s: %d of %d files failed", r.Command, r.Failed, len(r.Files))
}

// WriteFile writes r as YAML to path.
func (r Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
