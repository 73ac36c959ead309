package session

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
)

func sampleCollection() Collection {
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	done := started.Add(12 * time.Minute)
	msgs := []interview.Message{
		{ID: "msg_1", Role: interview.RoleAgent, Content: "Hi Ana!", Timestamp: started},
		{ID: "msg_2", Role: interview.RoleUser, Content: "Working on the launch", Timestamp: started.Add(time.Minute)},
	}
	return Collection{
		Interviews: []Record{
			{
				ID:              "interview_1",
				SubjectID:       "user_1",
				SubjectName:     "Ana",
				Status:          StatusCompleted,
				StartedAt:       started,
				CompletedAt:     &done,
				Transcript:      interview.Transcript(msgs),
				DurationMinutes: 12,
				Messages:        msgs,
			},
			{
				ID:          "interview_2",
				SubjectID:   "user_2",
				SubjectName: "Ben",
				Status:      StatusInProgress,
				StartedAt:   started,
				Messages:    msgs[:1],
				Transcript:  interview.Transcript(msgs[:1]),
				Flagged:     true,
				FlagReason:  "check figures",
			},
		},
		Summary: &SummaryReport{
			ID:              "summary_1",
			CreatedAt:       done,
			Themes:          []string{"Launch"},
			Blockers:        []string{"Capacity"},
			Achievements:    []string{"Shipped"},
			Recommendations: []string{"Hire"},
			FullReport:      "Report body",
		},
	}
}

func assertRoundTrip(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	empty, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty backend failed: %v", err)
	}
	if len(empty.Interviews) != 0 || empty.Summary != nil {
		t.Fatalf("expected empty collection, got %+v", empty)
	}

	want := sampleCollection()
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	// Saves overwrite rather than merge.
	want.Interviews = want.Interviews[:1]
	want.Summary = nil
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, _ = b.Load(ctx)
	if len(got.Interviews) != 1 || got.Summary != nil {
		t.Errorf("expected overwrite, got %+v", got)
	}
}

func assertEmptyMessagesKept(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	want := Collection{Interviews: []Record{{
		ID:          "interview_1",
		SubjectID:   "user_1",
		SubjectName: "Ana",
		Status:      StatusInProgress,
		StartedAt:   started,
		Messages:    []interview.Message{},
	}}}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Interviews) != 1 {
		t.Fatalf("expected one interview, got %d", len(got.Interviews))
	}
	if msgs := got.Interviews[0].Messages; msgs == nil || len(msgs) != 0 {
		t.Errorf("expected an empty message list, got %#v", msgs)
	}
}

func TestBackends_EmptyMessagesKept(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		assertEmptyMessagesKept(t, NewMemoryBackend())
	})
	t.Run("file", func(t *testing.T) {
		assertEmptyMessagesKept(t, NewFileBackend(filepath.Join(t.TempDir(), "interviews.json")))
	})
	t.Run("sqlite", func(t *testing.T) {
		b, err := NewSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "checkin.db"))
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { b.Close() })
		assertEmptyMessagesKept(t, b)
	})
}

func TestMemoryBackend_RoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryBackend())
}

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "interviews.json")
	b := NewFileBackend(path)
	assertRoundTrip(t, b)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file not created: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestFileBackend_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interviews.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileBackend(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	b, err := NewSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "checkin.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	assertRoundTrip(t, b)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/.checkin/x.json"); got != filepath.Join(home, ".checkin/x.json") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got := expandHome("/tmp/x.json"); got != "/tmp/x.json" {
		t.Errorf("absolute path changed: %q", got)
	}
}
