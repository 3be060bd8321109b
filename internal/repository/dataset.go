package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aliskhannn/quizzible/internal/domain/entities"
)

var ErrMissingColumn = errors.New("missing csv column")

// row is one CSV record addressed by header name.
type row struct {
	line   int
	fields map[string]string
}

func (r row) str(col string) string {
	return strings.TrimSpace(r.fields[col])
}

func (r row) integer(col string) (int, error) {
	v := r.str(col)
	n, err := strconv.Atoi(v)
	if err != nil {
		// Spreadsheet exports sometimes write whole numbers as "3.0".
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("line %d: column %q: invalid integer %q", r.line, col, v)
		}
		n = int(f)
	}
	return n, nil
}

// readRows parses a headed CSV, skipping blank lines. Column order is free,
// header names are matched case-insensitively.
func readRows(r io.Reader, required ...string) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var rows []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if isBlank(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		fields := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(rec) {
				fields[col] = rec[i]
			}
		}
		rows = append(rows, row{line: line, fields: fields})
	}

	return rows, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// LoadQuestions reads the questions dataset from path.
func LoadQuestions(path string) ([]entities.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	return ParseQuestions(f)
}

// ParseQuestions parses CSV with columns book,chapter,verse,id,question,answer.
func ParseQuestions(r io.Reader) ([]entities.Question, error) {
	rows, err := readRows(r, "book", "chapter", "verse", "id", "question", "answer")
	if err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	questions := make([]entities.Question, 0, len(rows))
	for _, rw := range rows {
		chapter, err := rw.integer("chapter")
		if err != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}
		verse, err := rw.integer("verse")
		if err != nil {
			return nil, fmt.Errorf("parse questions: %w", err)
		}

		questions = append(questions, entities.Question{
			Book:    rw.str("book"),
			Chapter: chapter,
			Verse:   verse,
			ID:      rw.str("id"),
			Prompt:  rw.str("question"),
			Answer:  rw.str("answer"),
		})
	}

	return questions, nil
}

// LoadVerses reads the verses dataset from path.
func LoadVerses(path string) ([]entities.Verse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open verses: %w", err)
	}
	defer f.Close()

	return ParseVerses(f)
}

// ParseVerses parses CSV with columns book,chapter,verse,content.
func ParseVerses(r io.Reader) ([]entities.Verse, error) {
	rows, err := readRows(r, "book", "chapter", "verse", "content")
	if err != nil {
		return nil, fmt.Errorf("parse verses: %w", err)
	}

	verses := make([]entities.Verse, 0, len(rows))
	for _, rw := range rows {
		chapter, err := rw.integer("chapter")
		if err != nil {
			return nil, fmt.Errorf("parse verses: %w", err)
		}
		verse, err := rw.integer("verse")
		if err != nil {
			return nil, fmt.Errorf("parse verses: %w", err)
		}

		verses = append(verses, entities.Verse{
			Book:    rw.str("book"),
			Chapter: chapter,
			Verse:   verse,
			Content: rw.str("content"),
		})
	}

	return verses, nil
}
