// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuExtractor reads the PDF structure with pdfcpu and scans each page's
// content stream for text-showing operators. It only understands simple
// (single-byte) font encodings.
type PdfcpuExtractor struct{}

// Extract returns the text of every page of the PDF at path.
func (PdfcpuExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read %s: %w", path, err)
	}

	pages := make([]string, 0, pctx.PageCount)
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", pageNr, path, err)
		}
		if r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", pageNr, path, err)
		}
		pages = append(pages, textFromContent(data))
	}
	return joinPages(pages), nil
}

// kernGap is the TJ adjustment, in thousandths of an em, at or below which
// a word break is assumed.
const kernGap = -200

// gapMark stands for a word gap inside a TJ array.
const gapMark = "\x00"

// textFromContent interprets the text operators of a content stream. The
// baseline is followed through BT, Td, TD, Tm and the vertical translation of
// cm (saved and restored by q/Q): text placed on a new baseline starts a new
// line, text moved along the same baseline is separated by a space. T*, '
// and " always break the line.
func textFromContent(data []byte) string {
	var sb strings.Builder
	var nums []float64
	var strs []string
	inArray := false

	var y, lastY, ctmY float64
	var ctmStack []float64
	shown, moved, lineBreak := false, false, false

	show := func(s string) {
		if s == "" {
			return
		}
		if shown {
			switch {
			case lineBreak || math.Abs(ctmY+y-lastY) > 1:
				sb.WriteByte('\n')
			case moved && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(s, " "):
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(s)
		shown, moved, lineBreak = true, false, false
		lastY = ctmY + y
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isWhite(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, n := readLiteral(data[i:])
			strs = append(strs, s)
			i += n
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			s, n := readHex(data[i:])
			strs = append(strs, s)
			i += n
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case c == '{' || c == '}' || c == '>':
			i++
		case c == '/':
			i++
			for i < len(data) && !isWhite(data[i]) && !isDelim(data[i]) {
				i++
			}
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(data) && (data[j] == '.' || (data[j] >= '0' && data[j] <= '9')) {
				j++
			}
			if v, err := strconv.ParseFloat(string(data[i:j]), 64); err == nil {
				nums = append(nums, v)
				if inArray && v <= kernGap && len(strs) > 0 {
					strs = append(strs, gapMark)
				}
			}
			i = j
		default:
			j := i + 1
			for j < len(data) && !isWhite(data[j]) && !isDelim(data[j]) {
				j++
			}
			switch string(data[i:j]) {
			case "BT":
				y = 0
				moved = true
			case "Tj", "TJ":
				show(joinShown(strs))
			case "'", "\"":
				lineBreak = true
				show(joinShown(strs))
			case "T*":
				lineBreak = true
			case "Td", "TD":
				if len(nums) >= 2 {
					y += nums[len(nums)-1]
				}
				moved = true
			case "Tm":
				if len(nums) >= 6 {
					y = nums[len(nums)-1]
				}
				moved = true
			case "cm":
				if len(nums) >= 6 {
					ctmY += nums[len(nums)-1]
				}
			case "q":
				ctmStack = append(ctmStack, ctmY)
			case "Q":
				if n := len(ctmStack); n > 0 {
					ctmY = ctmStack[n-1]
					ctmStack = ctmStack[:n-1]
				}
			}
			nums = nums[:0]
			strs = strs[:0]
			inArray = false
			i = j
		}
	}
	return trimLines(sb.String())
}

// joinShown concatenates the strings of a text-showing operator, turning
// kerning gaps into single spaces.
func joinShown(parts []string) string {
	var sb strings.Builder
	for i, p := range parts {
		if p != gapMark {
			sb.WriteString(p)
			continue
		}
		if i == len(parts)-1 || strings.HasPrefix(parts[i+1], " ") || strings.HasSuffix(sb.String(), " ") {
			continue
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

// readLiteral decodes a parenthesised string starting at b[0] == '('.
// It returns the decoded text and the number of bytes consumed.
func readLiteral(b []byte) (string, int) {
	var sb strings.Builder
	depth := 0
	i := 0
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c == '\\' && i+1 < len(b):
			i++
			switch b[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\n':
			case '\r':
				if i+1 < len(b) && b[i+1] == '\n' {
					i++
				}
			default:
				if b[i] >= '0' && b[i] <= '7' {
					val := int(b[i] - '0')
					for k := 0; k < 2 && i+1 < len(b) && b[i+1] >= '0' && b[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(b[i]-'0')
					}
					sb.WriteRune(rune(byte(val)))
				} else {
					sb.WriteByte(b[i])
				}
			}
		case c == '(':
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		default:
			sb.WriteRune(rune(c))
		}
	}
	return sb.String(), i
}

// readHex decodes a hex string starting at b[0] == '<'.
func readHex(b []byte) (string, int) {
	var digits []byte
	i := 1
	for ; i < len(b) && b[i] != '>'; i++ {
		if !isWhite(b[i]) {
			digits = append(digits, b[i])
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for k := 0; k+1 < len(digits); k += 2 {
		v, err := strconv.ParseUint(string(digits[k:k+2]), 16, 8)
		if err != nil {
			continue
		}
		sb.WriteRune(rune(byte(v)))
	}
	return sb.String(), i + 1
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
