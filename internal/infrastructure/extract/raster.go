package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PopplerRasterizer renders PDF pages through the pdftoppm binary at a
// fixed resolution. Like the OCR engine, a missing binary is recorded
// at construction and surfaces per call so the PDF path can degrade.
type PopplerRasterizer struct {
	binPath string
	dpi     int
	initErr error
}

func NewPopplerRasterizer(binPath string, dpi int) *PopplerRasterizer {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return &PopplerRasterizer{binPath: binPath, dpi: dpi, initErr: fmt.Errorf("resolve rasterizer binary %q: %w", binPath, err)}
	}
	return &PopplerRasterizer{binPath: resolved, dpi: dpi}
}

func (r *PopplerRasterizer) Available() bool {
	return r.initErr == nil
}

// RasterizePage renders one page to PNG: PDF in over stdin, image out
// over stdout.
func (r *PopplerRasterizer) RasterizePage(ctx context.Context, content []byte, page int) ([]byte, error) {
	if r.initErr != nil {
		return nil, fmt.Errorf("rasterizer unavailable: %w", r.initErr)
	}
	if page <= 0 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}

	pageArg := strconv.Itoa(page)
	cmd := exec.CommandContext(ctx, r.binPath,
		"-png",
		"-r", strconv.Itoa(r.dpi),
		"-f", pageArg,
		"-l", pageArg,
		"-",
	)
	cmd.Stdin = bytes.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("pdftoppm page %d: %w", page, err)
		}
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, detail)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("pdftoppm page %d: empty image", page)
	}
	return stdout.Bytes(), nil
}
