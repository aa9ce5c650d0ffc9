package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine runs optical character recognition through the tesseract
// binary. The binary is resolved once at construction; a missing binary
// does not fail startup, it makes every Recognize call return the
// recorded init error so callers degrade to their fallbacks.
type Engine struct {
	binPath string
	initErr error
}

func New(binPath string) *Engine {
	if binPath == "" {
		binPath = "tesseract"
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return &Engine{binPath: binPath, initErr: fmt.Errorf("resolve ocr binary %q: %w", binPath, err)}
	}
	return &Engine{binPath: resolved}
}

func (e *Engine) Available() bool {
	return e.initErr == nil
}

// Recognize feeds a raster image to tesseract over stdin and returns
// the recognized text. The engine itself holds no mutable state, so
// concurrent calls each run their own process.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.initErr != nil {
		return "", fmt.Errorf("ocr engine unavailable: %w", e.initErr)
	}
	if len(image) == 0 {
		return "", fmt.Errorf("ocr input is empty")
	}

	cmd := exec.CommandContext(ctx, e.binPath, "stdin", "stdout")
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("tesseract: %w", err)
		}
		return "", fmt.Errorf("tesseract: %w: %s", err, detail)
	}
	return stdout.String(), nil
}
