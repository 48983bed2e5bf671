// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/material-summary/pkg/types"
)

const (
	promptDirectory = "Enter the folder path containing PDFs: "
	promptComponent = "Enter component name: "
)

// promptConfig asks for the report directory and the component name. The
// directory is trimmed; the component is trimmed and lowercased.
func promptConfig(r io.Reader, w io.Writer) (types.SummaryConfig, error) {
	br := bufio.NewReader(r)

	dir, err := promptLine(br, w, promptDirectory)
	if err != nil {
		return types.SummaryConfig{}, fmt.Errorf("reading directory: %w", err)
	}
	component, err := promptLine(br, w, promptComponent)
	if err != nil {
		return types.SummaryConfig{}, fmt.Errorf("reading component name: %w", err)
	}

	return types.SummaryConfig{
		Directory: dir,
		Component: strings.ToLower(component),
	}, nil
}

func promptLine(br *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
