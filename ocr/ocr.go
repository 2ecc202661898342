package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// TextExtractor turns a prescription image into raw text. The OCR engine
// itself is an external collaborator.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// LabAnalyzer turns a lab-result image into a structured JSON report.
type LabAnalyzer interface {
	Analyze(ctx context.Context, filePath string) (json.RawMessage, error)
}

// TesseractExtractor shells out to the tesseract binary.
type TesseractExtractor struct {
	Binary string
}

func NewTesseractExtractor() *TesseractExtractor {
	bin := os.Getenv("TESSERACT_BIN")
	if bin == "" {
		bin = "tesseract"
	}
	return &TesseractExtractor{Binary: bin}
}

func (t *TesseractExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Binary, imagePath, "stdout")
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %v: %s", err, stderr.String())
	}
	return out.String(), nil
}

// ScriptLabAnalyzer runs the lab-result analysis script and expects a JSON
// document on stdout.
type ScriptLabAnalyzer struct {
	Python string
	Script string
}

func NewScriptLabAnalyzer() *ScriptLabAnalyzer {
	python := os.Getenv("LAB_PYTHON_BIN")
	if python == "" {
		python = "python3"
	}
	script := os.Getenv("LAB_SCRIPT_PATH")
	if script == "" {
		script = "scripts/analyze_lab_results.py"
	}
	return &ScriptLabAnalyzer{Python: python, Script: script}
}

func (a *ScriptLabAnalyzer) Analyze(ctx context.Context, filePath string) (json.RawMessage, error) {
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.Python, a.Script, filePath)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("lab analysis failed: %v: %s", err, stderr.String())
	}
	if !json.Valid(out.Bytes()) {
		return nil, fmt.Errorf("lab analysis returned invalid JSON")
	}
	return json.RawMessage(out.Bytes()), nil
}
