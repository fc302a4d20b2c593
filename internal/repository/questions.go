package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository serves the topic question banks.
type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Questions returns a collection's questions in document order. An unknown
// collection yields an empty slice.
func (r *QuestionRepository) Questions(ctx context.Context, collection string) ([]quiz.Question, error) {
	var rows []models.Question
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		q := quiz.Question{ID: row.ID, Prompt: row.Prompt, Correct: row.Correct}
		for i, key := range row.OptionKeys {
			var text string
			if i < len(row.OptionTexts) {
				text = row.OptionTexts[i]
			}
			q.Options = append(q.Options, quiz.Option{Key: key, Text: text})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Upsert stores questions for a collection, keeping their order.
func (r *QuestionRepository) Upsert(ctx context.Context, collection string, questions []quiz.Question) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]models.Question, 0, len(questions))
	for i, q := range questions {
		row := models.Question{
			Collection:  collection,
			ID:          q.ID,
			Position:    i,
			Prompt:      q.Prompt,
			Correct:     q.Correct,
			OptionKeys:  models.Strings{},
			OptionTexts: models.Strings{},
		}
		for _, o := range q.Options {
			row.OptionKeys = append(row.OptionKeys, o.Key)
			row.OptionTexts = append(row.OptionTexts, o.Text)
		}
		rows = append(rows, row)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
}

// Count returns the number of questions stored across all collections.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).Count(&n).Error
	return n, err
}

// QuestionBank is the on-disk seed file: collection name to questions.
type QuestionBank map[string][]quiz.Question

// LoadQuestionBank reads a YAML seed file. Option order follows the file.
func LoadQuestionBank(path string) (QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var doc struct {
		Collections map[string][]seedQuestion `yaml:"collections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question bank YAML: %w", err)
	}

	bank := make(QuestionBank, len(doc.Collections))
	for name, seeds := range doc.Collections {
		for _, s := range seeds {
			bank[name] = append(bank[name], s.question())
		}
	}
	return bank, nil
}

// Seed stores every collection of the bank.
func (r *QuestionRepository) Seed(ctx context.Context, bank QuestionBank) error {
	for collection, questions := range bank {
		if err := r.Upsert(ctx, collection, questions); err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
	}
	return nil
}

type seedQuestion struct {
	ID      string    `yaml:"id"`
	Prompt  string    `yaml:"q"`
	Options yaml.Node `yaml:"options"`
	Correct string    `yaml:"correct"`
}

func (s seedQuestion) question() quiz.Question {
	q := quiz.Question{ID: s.ID, Prompt: s.Prompt, Correct: s.Correct}
	// A mapping node lists keys and values alternately.
	if s.Options.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(s.Options.Content); i += 2 {
			q.Options = append(q.Options, quiz.Option{
				Key:  s.Options.Content[i].Value,
				Text: s.Options.Content[i+1].Value,
			})
		}
	}
	return q
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
