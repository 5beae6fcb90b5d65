package render

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

const renderTimeout = 60 * time.Second

// PDFRenderer prints tailored text to an A4 PDF via headless Chrome
// and writes it into Dir under a random name. Set ChromePath to point
// at a non-default Chrome binary.
type PDFRenderer struct {
	Dir        string
	ChromePath string
}

// Render writes the generated PDF and returns its file name.
func (r *PDFRenderer) Render(ctx context.Context, text string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, renderTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-render-")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(pageHTML(text)), 0o644); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(false).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return "", fmt.Errorf("print to pdf: %w", err)
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir files dir: %w", err)
	}
	fileName := uuid.NewString() + ".pdf"
	if err := os.WriteFile(filepath.Join(r.Dir, fileName), pdfBuf, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return fileName, nil
}

func pageHTML(text string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	b.WriteString(`body{font-family:Georgia,"Times New Roman",serif;font-size:12pt;line-height:1.4;margin:48px;white-space:pre-wrap;}`)
	b.WriteString(`</style></head><body>`)
	b.WriteString(html.EscapeString(text))
	b.WriteString(`</body></html>`)
	return b.String()
}
