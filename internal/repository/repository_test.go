package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/database"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/quiz"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(t.TempDir(), config.DatabaseConfig{Driver: "sqlite", Path: "test.db"}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db
}

const seedYAML = `collections:
  cn_mcqs:
    - id: cn1
      q: Which layer does IP belong to?
      options:
        D: Physical
        A: Transport
        C: Network
      correct: C
    - id: cn2
      q: Default HTTP port?
      options:
        A: "80"
        B: "21"
      correct: A
  ml_mcqs:
    - id: ml1
      q: Which one is supervised?
      options:
        A: Regression
        B: Clustering
      correct: A
`

func TestQuestionBankSeedAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0644); err != nil {
		t.Fatal(err)
	}
	bank, err := LoadQuestionBank(path)
	if err != nil {
		t.Fatalf("LoadQuestionBank: %v", err)
	}

	repo := NewQuestionRepository(openTestDB(t))
	ctx := context.Background()
	if err := repo.Seed(ctx, bank); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Seeding again replaces rather than duplicates.
	if err := repo.Seed(ctx, bank); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if n, _ := repo.Count(ctx); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	qs, err := repo.Questions(ctx, "cn_mcqs")
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 2 || qs[0].ID != "cn1" || qs[1].ID != "cn2" {
		t.Fatalf("questions = %+v", qs)
	}
	want := []quiz.Option{{Key: "D", Text: "Physical"}, {Key: "A", Text: "Transport"}, {Key: "C", Text: "Network"}}
	if len(qs[0].Options) != len(want) {
		t.Fatalf("options = %+v", qs[0].Options)
	}
	for i, o := range want {
		if qs[0].Options[i] != o {
			t.Errorf("option %d = %+v, want %+v (source order)", i, qs[0].Options[i], o)
		}
	}
	if qs[0].Correct != "C" || qs[1].Options[0].Text != "80" {
		t.Errorf("questions = %+v", qs)
	}

	empty, err := repo.Questions(ctx, "ds_mcqs")
	if err != nil || len(empty) != 0 {
		t.Errorf("unknown collection = %v, %v", empty, err)
	}
}

func TestLoadQuestionBankMissingFile(t *testing.T) {
	if _, err := LoadQuestionBank(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSeedFileCoversEveryTopic(t *testing.T) {
	bank, err := LoadQuestionBank(filepath.Join("..", "..", "config", "questions.yaml"))
	if err != nil {
		t.Fatalf("LoadQuestionBank: %v", err)
	}
	for _, topic := range quiz.Topics() {
		collection, _ := quiz.CollectionFor(topic)
		qs := bank[collection]
		if len(qs) == 0 {
			t.Errorf("%s (%s) has no questions", topic, collection)
		}
		for _, q := range qs {
			if _, ok := q.OptionText(q.Correct); !ok {
				t.Errorf("%s/%s: correct key %q is not an option", collection, q.ID, q.Correct)
			}
		}
	}
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	profile := func(u *models.User) *models.ProfileMetadata {
		return &models.ProfileMetadata{Path: "artifacts/app/users/" + u.ID + "/profile/metadata", AppID: "app", UserID: u.ID, Email: u.Email}
	}
	user, err := repo.CreateUser(ctx, " Ada@Example.com ", "secret123", "Ada", "Lovelace", profile)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" || user.Email != "ada@example.com" || user.Password == "secret123" {
		t.Errorf("user = %+v", user)
	}
	if !user.CheckPassword("secret123") || user.CheckPassword("wrong") {
		t.Error("CheckPassword does not match the stored hash")
	}

	if _, err := repo.CreateUser(ctx, "ada@example.com", "x", "A", "L", nil); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate CreateUser = %v, want ErrEmailTaken", err)
	}

	got, err := repo.GetUserByEmail(ctx, "ADA@example.com")
	if err != nil || got.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, %v", got, err)
	}
	if _, err := repo.GetUserByID(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("GetUserByID(missing) = %v, want not found", err)
	}
	p, err := repo.GetProfile(ctx, "artifacts/app/users/"+user.ID+"/profile/metadata")
	if err != nil || p.UserID != user.ID {
		t.Errorf("GetProfile = %+v, %v", p, err)
	}
}

func TestHistoryRepository(t *testing.T) {
	repo := NewHistoryRepository(openTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	records := []quiz.HistoryRecord{
		{ID: "h1", UserID: "u1", Topic: quiz.TopicML, Percentage: 40, Score: "40%", Correct: 2, Total: 5, Timestamp: base},
		{ID: "h2", UserID: "u1", Topic: quiz.TopicNetworking, Percentage: 100, Score: "100%", Correct: 2, Total: 2, Timestamp: base.Add(time.Hour)},
		{ID: "h3", UserID: "u2", Topic: quiz.TopicML, Percentage: 80, Timestamp: base},
		{ID: "h4", UserID: "u1", Topic: quiz.TopicML, Percentage: 60, Timestamp: base.Add(2 * time.Hour)},
	}
	for _, rec := range records {
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%s): %v", rec.ID, err)
		}
	}

	entries, err := repo.ForUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].ID != "h4" || entries[2].ID != "h1" {
		t.Errorf("ForUser order = %+v", entries)
	}

	points, err := repo.Timeline(ctx, "u1", quiz.TopicML)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 || points[0].Percentage != 40 || points[1].Percentage != 60 {
		t.Errorf("Timeline = %+v", points)
	}
}
