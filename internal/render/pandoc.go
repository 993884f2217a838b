package render

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doc-studio/engine/internal/models"
)

// Renderer converts assembled markdown to docx/pptx via a pandoc subprocess.
type Renderer struct {
	bin string
}

// NewRenderer returns a renderer using the given pandoc binary.
// An empty bin falls back to "pandoc" on PATH.
func NewRenderer(bin string) *Renderer {
	if bin == "" {
		bin = "pandoc"
	}
	return &Renderer{bin: bin}
}

// Render produces the binary artifact for a project. The project's Sections
// must already be in position order.
func (r *Renderer) Render(ctx context.Context, p *models.Project) (*Result, error) {
	var target, mime string
	switch p.DocType {
	case models.DocTypeWord:
		target, mime = "docx", MimeDOCX
	case models.DocTypePPT:
		target, mime = "pptx", MimePPTX
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDocType, p.DocType)
	}

	if _, err := exec.LookPath(r.bin); err != nil {
		return nil, fmt.Errorf("%w: %s not installed", ErrDependencyMissing, r.bin)
	}

	cmd := exec.CommandContext(ctx, r.bin,
		"-f", "markdown",
		"-t", target,
		"--standalone",
		"-o", "-", // output to stdout
	)
	cmd.Stdin = strings.NewReader(buildMarkdown(p))

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("pandoc failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("pandoc execution failed: %w", err)
	}

	return &Result{
		Data:     output,
		Filename: exportFilename(p.Title, p.DocType),
		MimeType: mime,
	}, nil
}
