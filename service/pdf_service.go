package service

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/tupi-ai/askpdf/types"
	"github.com/tupi-ai/askpdf/utils"
)

// PDFService loads a PDF into one text unit per page. Extraction is
// delegated to the poppler utilities (pdfinfo, pdftotext), which must be on
// PATH.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// LoadPages extracts the text of every page of the PDF at path, in page
// order. Pages that yield no text are kept as empty entries so page numbers
// stay aligned; a PDF with zero pages is not an error here.
func (s *PDFService) LoadPages(path string) ([]types.Page, error) {
	totalPages, err := getNumPages(path)
	if err != nil {
		return nil, err
	}

	title := utils.FileNameWithoutExt(path)
	pages := make([]types.Page, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := extractPageText(path, pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			text = ""
		}
		pages = append(pages, types.Page{
			Text: cleanText(text),
			Metadata: types.Metadata{
				"source":      path,
				"title":       title,
				"page":        pageNum,
				"total_pages": totalPages,
			},
		})
	}
	return pages, nil
}

// extractPageText extracts a single page's text using pdftotext.
func extractPageText(path string, pageNumber int) (string, error) {
	cmd := exec.Command("pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNumber, err)
	}
	return out.String(), nil
}

var pagesRe = regexp.MustCompile(`Pages:\s+(\d+)`)

// getNumPages uses pdfinfo to get the total number of pages in a PDF file.
func getNumPages(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pagesRe.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

// cleanText strips control characters that pdftotext tends to leave behind.
func cleanText(text string) string {
	replacements := map[string]string{
		"\x00": "",   // null
		"�": "",   // unicode replacement character
		"\x1b": "",   // escape
		"\r":     "",   // carriage return
		"\f":     "\n", // form feed
	}
	cleaned := text
	for old, repl := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, repl)
	}
	return strings.TrimSpace(cleaned)
}
