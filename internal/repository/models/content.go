package models

// Test is a row of the tests table
type Test struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Question is a row of the questions table
type Question struct {
	ID            int64  `db:"id"`
	Text          string `db:"text"`
	QuestionUpper string `db:"question_upper"`
	TestID        int64  `db:"test_id"`
	AnswerID      int64  `db:"answer_id"`
}

// Answer is a row of the answers table
type Answer struct {
	ID   int64  `db:"id"`
	Text string `db:"text"`
}

// QuestionLink is a question joined with the test and answer it references
type QuestionLink struct {
	QuestionID int64  `db:"question_id"`
	Text       string `db:"text"`
	TestName   string `db:"test_name"`
	AnswerText string `db:"answer_text"`
}
