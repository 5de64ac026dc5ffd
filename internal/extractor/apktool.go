package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"test-extractor/internal/config"
	"test-extractor/internal/domain"
	"test-extractor/internal/util"

	"go.uber.org/zap"
)

// commandRunner executes an external tool and blocks until it exits.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner invokes the tool via os/exec.
type execRunner struct{}

// Run executes the command; a non-zero exit is returned with the tool's stderr attached.
func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return fmt.Errorf("%s %s: %w (%s)", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

// Apktool recovers a single resource file from an Android package by decoding it with apktool.
type Apktool struct {
	tool         string
	resourcePath string
	runner       commandRunner
	logger       *zap.Logger
}

// NewApktool creates an extractor from configuration. A nil runner uses os/exec.
func NewApktool(cfg config.ExtractorConfig, runner commandRunner, logger *zap.Logger) *Apktool {
	if runner == nil {
		runner = execRunner{}
	}
	tool := cfg.Tool
	if tool == "" {
		tool = config.DefaultTool()
	}
	return &Apktool{
		tool:         tool,
		resourcePath: cfg.ResourcePath,
		runner:       runner,
		logger:       logger,
	}
}

var _ domain.ResourceExtractor = (*Apktool)(nil)

// Extract decodes inputPath into a private scratch directory and moves the configured
// resource to outputPath. The scratch directory is removed on every return path.
func (a *Apktool) Extract(ctx context.Context, inputPath, outputPath string) error {
	a.logger.Info("Unpacking", zap.String("path", inputPath))

	scratch, err := os.MkdirTemp("", "apktool-"+util.NewRunID()+"-*")
	if err != nil {
		return domain.NewExtractionError(inputPath, fmt.Errorf("failed to create scratch directory: %w", err))
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			a.logger.Warn("Failed to remove scratch directory", zap.String("dir", scratch), zap.Error(rmErr))
		}
	}()

	// apktool refuses to decode into an existing directory without -f.
	if err := a.runner.Run(ctx, a.tool, "d", "-f", "-o", scratch, inputPath); err != nil {
		return domain.NewExtractionError(inputPath, err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewExtractionError(inputPath, fmt.Errorf("failed to create output directory: %w", err))
		}
	}

	resource := filepath.Join(scratch, a.resourcePath)
	if _, err := os.Stat(resource); err != nil {
		return domain.NewExtractionError(inputPath, fmt.Errorf("resource %s not found in package: %w", a.resourcePath, err))
	}
	if err := moveFile(resource, outputPath); err != nil {
		return domain.NewExtractionError(inputPath, err)
	}

	a.logger.Debug("Extracted resource", zap.String("from", inputPath), zap.String("to", outputPath))
	return nil
}

// DerivedPath replaces the extension of path with suffix: sources/elektro.apk -> sources/elektro.arrays.xml
func DerivedPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// moveFile renames src to dst, copying when they live on different file systems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return os.Remove(src)
}
