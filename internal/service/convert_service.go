package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"test-extractor/internal/config"
	"test-extractor/internal/domain"
	"test-extractor/internal/extractor"
	"test-extractor/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// convertService implements the domain.ConvertService interface.
type convertService struct {
	cfg          *config.Config
	extractor    domain.ResourceExtractor
	parser       domain.SourceParser
	builder      domain.ScriptBuilder
	materializer domain.Materializer
	verifier     domain.DatabaseVerifier
	logger       *zap.Logger
}

// NewConvertService creates a new instance of convertService.
func NewConvertService(
	cfg *config.Config,
	resourceExtractor domain.ResourceExtractor,
	parser domain.SourceParser,
	builder domain.ScriptBuilder,
	materializer domain.Materializer,
	verifier domain.DatabaseVerifier,
	logger *zap.Logger,
) domain.ConvertService {
	return &convertService{
		cfg:          cfg,
		extractor:    resourceExtractor,
		parser:       parser,
		builder:      builder,
		materializer: materializer,
		verifier:     verifier,
		logger:       logger,
	}
}

// Run unpacks packages, parses every source, writes the SQL script and loads it into a fresh
// database. Nothing is written when an extraction or parse step fails.
func (s *convertService) Run(ctx context.Context) error {
	log := s.logger.With(zap.String("run_id", util.NewRunID()))
	log.Info("Starting conversion", zap.Int("sources", len(s.cfg.Sources)))

	tests := make([]*domain.Test, len(s.cfg.Sources))
	for i, src := range s.cfg.Sources {
		tests[i] = domain.NewTest(src.Name, src.Path)
		if err := tests[i].Validate(); err != nil {
			return domain.NewInvalidInputError(fmt.Sprintf("source #%d: %v", i, err))
		}
	}

	if err := s.extractPackages(ctx, tests); err != nil {
		log.Error("Extraction failed, no database produced", zap.Error(err))
		return err
	}

	log.Info("Creating the database sql file", zap.String("path", s.cfg.Output.ScriptPath))
	for _, t := range tests {
		log.Info("Extract", zap.String("path", t.Path))
		questions, err := s.parser.Parse(t.Path)
		if err != nil {
			return fmt.Errorf("test %q: %w", t.Name, err)
		}
		t.Questions = questions
		log.Debug("Parsed test", zap.String("name", t.Name), zap.Int("questions", len(questions)))
	}

	script, err := s.builder.Build(tests)
	if err != nil {
		return fmt.Errorf("failed to build script: %w", err)
	}
	if err := writeFile(s.cfg.Output.ScriptPath, script.Text); err != nil {
		return err
	}

	if err := s.materializer.Materialize(ctx, s.cfg.Output.ScriptPath, s.cfg.Output.DatabasePath); err != nil {
		return err
	}

	if err := s.verifier.Verify(ctx, s.cfg.Output.DatabasePath, script); err != nil {
		return err
	}

	log.Info("Finished",
		zap.Int("tests", len(script.TestNames)),
		zap.Int("questions", script.QuestionCount),
		zap.Int("answers", len(script.Answers)),
		zap.String("database", s.cfg.Output.DatabasePath),
	)
	return nil
}

// extractPackages replaces every package source with the resource file unpacked from it.
// Up to Extractor.Workers packages are unpacked at once. After the first failure no further
// package is started.
func (s *convertService) extractPackages(ctx context.Context, tests []*domain.Test) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Extractor.Workers)

	for _, t := range tests {
		if t.Format() != domain.FormatPackage {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		t := t
		g.Go(func() error {
			// g.Go may have waited for a slot held by the failing package
			if err := gctx.Err(); err != nil {
				return err
			}
			out := extractor.DerivedPath(t.Path, s.cfg.Extractor.OutputSuffix)
			if err := s.extractor.Extract(gctx, t.Path, out); err != nil {
				return fmt.Errorf("test %q: %w", t.Name, err)
			}
			t.Path = out
			return nil
		})
	}
	return g.Wait()
}

func writeFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
