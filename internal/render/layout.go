// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/font"

	"github.com/pdiddy/material-summary/pkg/types"
)

// A4 portrait geometry in points, origin at the upper left corner.
const (
	pageHeight  = 842.0
	marginLeft  = 40.0
	marginTop   = 50.0
	marginBot   = 40.0
	contentW    = 515.0
	titleSize   = 18
	bodySize    = 10
	bodyLeading = 14.0
	rowHeight   = 20
	bodyFont    = "Helvetica"
	boldFont    = "Helvetica-Bold"
)

// Colours of the observation table.
const (
	headerBg   = "#808080"
	headerText = "#F5F5F5"
	gridColor  = "#000000"
)

// Layout is a pdfcpu "create" document.
type Layout struct {
	Paper      string          `json:"paper"`
	Origin     string          `json:"origin"`
	ContentBox bool            `json:"contentBox"`
	Pages      map[string]Page `json:"pages"`
}

// Page holds the content of one page.
type Page struct {
	Content Content `json:"content"`
}

// Content lists the text boxes and tables placed on a page.
type Content struct {
	Text  []TextBox `json:"text,omitempty"`
	Table []Table   `json:"table,omitempty"`
}

// Font selects a font by name, size, and colour.
type Font struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Color string `json:"col,omitempty"`
}

// TextBox is a positioned block of text. pdfcpu breaks lines only at "\n";
// Width sets the box width but does not wrap.
type TextBox struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Width float64    `json:"width,omitempty"`
	Font  *Font      `json:"font,omitempty"`
}

// Border draws the table grid.
type Border struct {
	Width int    `json:"width"`
	Color string `json:"col"`
}

// TableHeader is the shaded first row of a table.
type TableHeader struct {
	Values          []string `json:"values"`
	BackgroundColor string   `json:"bgCol"`
	Font            *Font    `json:"font,omitempty"`
}

// Table is a bordered grid of cells. Rows counts the header row.
type Table struct {
	Pos        [2]float64   `json:"pos"`
	Width      float64      `json:"width"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	LineHeight int          `json:"lheight"`
	ColWidths  []int        `json:"colWidths"`
	Font       *Font        `json:"font,omitempty"`
	Border     *Border      `json:"border,omitempty"`
	Header     *TableHeader `json:"header,omitempty"`
	Values     [][]string   `json:"values"`
}

// NewLayout lays out the summary document for report: title, date line,
// summary block, and the observation table. Table rows that do not fit on a
// page continue on the next one under a repeated header.
//
// The summary is placed verbatim, without escaping.
func NewLayout(report types.ExtractedReport) Layout {
	l := Layout{Paper: "A4P", Origin: "UpperLeft", Pages: map[string]Page{}}

	bold := func(size int) *Font { return &Font{Name: boldFont, Size: size} }
	regular := &Font{Name: bodyFont, Size: bodySize}

	y := marginTop
	first := Content{}
	first.Text = append(first.Text,
		TextBox{Value: Title(report.Component), Pos: [2]float64{marginLeft, y}, Width: contentW, Font: bold(titleSize)},
	)
	y += 2 * titleSize
	first.Text = append(first.Text,
		TextBox{Value: "Date: " + report.Date, Pos: [2]float64{marginLeft, y}, Font: bold(bodySize)},
	)
	y += 2 * bodyLeading
	first.Text = append(first.Text,
		TextBox{Value: "Summary of Analysis:", Pos: [2]float64{marginLeft, y}, Font: bold(bodySize)},
	)
	y += 2 * bodyLeading
	summary := wrapText(report.Summary, bodyFont, bodySize, contentW)
	first.Text = append(first.Text,
		TextBox{Value: strings.Join(summary, "\n"), Pos: [2]float64{marginLeft, y}, Width: contentW, Font: regular},
	)
	y += float64(len(summary))*bodyLeading + bodyLeading

	rows := report.Table()
	header, body := rows[0], rows[1:]

	content := first
	pageNr := 1
	for {
		fit := int((pageHeight-marginBot-y)/rowHeight) - 1
		if fit < 1 && len(content.Text) > 0 && y > marginTop {
			// Not even one row fits below the summary: start the table on a
			// fresh page.
			l.Pages[strconv.Itoa(pageNr)] = Page{Content: content}
			pageNr++
			content = Content{}
			y = marginTop
			continue
		}
		fit = max(fit, 1)
		n := min(fit, len(body))
		content.Table = append(content.Table, observationTable(header, body[:n], y))
		l.Pages[strconv.Itoa(pageNr)] = Page{Content: content}
		body = body[n:]
		if len(body) == 0 {
			break
		}
		pageNr++
		content = Content{}
		y = marginTop
	}
	return l
}

// JSON encodes the layout for pdfcpu.
func (l Layout) JSON() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}

// PageCount returns the number of pages in the layout.
func (l Layout) PageCount() int {
	return len(l.Pages)
}

func observationTable(header []string, values [][]string, y float64) Table {
	return Table{
		Pos:        [2]float64{marginLeft, y},
		Width:      contentW,
		Rows:       len(values) + 1,
		Cols:       2,
		LineHeight: rowHeight,
		ColWidths:  []int{50, 50},
		Font:       &Font{Name: bodyFont, Size: bodySize},
		Border:     &Border{Width: 1, Color: gridColor},
		Header: &TableHeader{
			Values:          []string{header[0], header[1]},
			BackgroundColor: headerBg,
			Font:            &Font{Name: boldFont, Size: bodySize, Color: headerText},
		},
		Values: values,
	}
}

// wrapText breaks text into lines no wider than width when set in fontName
// at fontSize. Existing line breaks are kept, lines are broken at spaces,
// and a word wider than width is split between characters. Blank lines
// survive so the result has at least one line.
func wrapText(text, fontName string, fontSize int, width float64) []string {
	fits := func(s string) bool { return font.TextWidth(s, fontName, fontSize) <= width }

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var cur string
		for _, word := range strings.Fields(para) {
			switch {
			case cur == "":
			case fits(cur + " " + word):
				cur += " " + word
				continue
			default:
				lines = append(lines, cur)
			}
			for !fits(word) {
				head := splitFitting(word, fits)
				lines = append(lines, head)
				word = word[len(head):]
			}
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// splitFitting returns the longest prefix of word, at least one rune, that
// fits.
func splitFitting(word string, fits func(string) bool) string {
	_, end := utf8.DecodeRuneInString(word)
	for i := range word {
		if i <= end {
			continue
		}
		if !fits(word[:i]) {
			break
		}
		end = i
	}
	return word[:end]
}
