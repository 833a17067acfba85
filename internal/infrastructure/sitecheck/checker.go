package sitecheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Checker verifies that a deployed directory page is wired to the public
// CSV. The page loads the dataset client-side from a fixed filename, so a
// rename on either side silently breaks the whole directory; this catches it
// before members do.
type Checker struct {
	client      *http.Client
	csvFilename string
	logger      *slog.Logger
}

// NewChecker wires an HTTP client for remote pages.
func NewChecker(client *http.Client, csvFilename string, logger *slog.Logger) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Checker{client: client, csvFilename: csvFilename, logger: logger}
}

// Check loads the page at target (URL or local path) and confirms it
// references the expected CSV filename.
func (c *Checker) Check(ctx context.Context, target string) error {
	doc, err := c.loadDocument(ctx, target)
	if err != nil {
		return err
	}

	if !referencesCSV(doc, c.csvFilename) {
		return fmt.Errorf("page %s does not reference %s", target, c.csvFilename)
	}

	if c.logger != nil {
		c.logger.Info("page references public dataset",
			"target", target,
			"csv", c.csvFilename,
			"tables", doc.Find("table").Length(),
			"scripts", doc.Find("script").Length())
	}

	return nil
}

func (c *Checker) loadDocument(ctx context.Context, target string) (*goquery.Document, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return c.fetchDocument(ctx, target)
	}

	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", target, err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", target, err)
	}
	return doc, nil
}

func (c *Checker) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "bottin/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

// referencesCSV reports whether any href/src attribute or inline script
// mentions the dataset filename.
func referencesCSV(doc *goquery.Document, filename string) bool {
	found := false

	doc.Find("[href], [src]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		for _, attr := range []string{"href", "src"} {
			if value, ok := sel.Attr(attr); ok && strings.Contains(value, filename) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}

	doc.Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), filename) {
			found = true
			return false
		}
		return true
	})

	return found
}
