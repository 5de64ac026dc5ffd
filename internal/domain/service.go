package domain

import "context"

// ResourceExtractor unpacks an application package and stores its question resource at outputPath
type ResourceExtractor interface {
	Extract(ctx context.Context, inputPath, outputPath string) error
}

// SourceParser reads the (question, answer) pairs of one source file
type SourceParser interface {
	Parse(path string) ([]Question, error)
}

// Script is the textual schema+data dump together with what it inserts.
// Answers holds the distinct answer texts indexed by their assigned id, Links the test name and
// answer text every question row must resolve to, indexed by question id.
type Script struct {
	Text          string
	TestNames     []string
	QuestionCount int
	Answers       []string
	Links         []QuestionLink
}

// QuestionLink is what a question row's test_id and answer_id are expected to resolve to
type QuestionLink struct {
	Text       string
	TestName   string
	AnswerText string
}

// ScriptBuilder renders populated tests into a replayable SQL script
type ScriptBuilder interface {
	Build(tests []*Test) (*Script, error)
}

// Materializer replaces the database at dbPath with the result of running the script at scriptPath
type Materializer interface {
	Materialize(ctx context.Context, scriptPath, dbPath string) error
}

// DatabaseVerifier checks a materialized database against what the script was built from
type DatabaseVerifier interface {
	Verify(ctx context.Context, dbPath string, expected *Script) error
}

// TransactionManager runs fn inside a single database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConvertService drives the whole conversion run
type ConvertService interface {
	Run(ctx context.Context) error
}
