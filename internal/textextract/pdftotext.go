// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runner abstracts command execution for testing.
type runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner is the production runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// PdftotextExtractor shells out to poppler's pdftotext. Pages are separated
// by form feeds in its output, which the summary extractor treats as line
// breaks.
type PdftotextExtractor struct {
	bin    string
	runner runner
}

// NewPdftotextExtractor returns an extractor that runs bin (default
// "pdftotext").
func NewPdftotextExtractor(bin string) *PdftotextExtractor {
	if bin == "" {
		bin = "pdftotext"
	}
	return &PdftotextExtractor{bin: bin, runner: execRunner{}}
}

// Extract runs `pdftotext -enc UTF-8 -eol unix <path> -` and returns stdout.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	out, errb, err := p.runner.Run(ctx, p.bin, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		msg := strings.TrimSpace(string(errb))
		if msg != "" {
			return "", fmt.Errorf("running %s on %s: %w: %s", p.bin, path, err, msg)
		}
		return "", fmt.Errorf("running %s on %s: %w", p.bin, path, err)
	}
	return string(out), nil
}
