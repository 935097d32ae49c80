package session

import (
	"sync"
	"testing"

	"github.com/kczek/brewpost/internal/post"
)

func TestGetOrCreate(t *testing.T) {
	store := NewStore()

	if got := store.Get(1); got != nil {
		t.Fatalf("expected no session before creation, got %+v", got)
	}

	sess := store.GetOrCreate(1)
	if sess == nil {
		t.Fatal("expected session to be created")
	}
	if sess.Stage != StageEmpty {
		t.Errorf("new session stage = %v, want %v", sess.Stage, StageEmpty)
	}

	again := store.GetOrCreate(1)
	if again != sess {
		t.Error("expected GetOrCreate to return the same session")
	}

	store.Delete(1)
	if got := store.Get(1); got != nil {
		t.Error("expected session gone after Delete")
	}
}

func TestUpdateSerializesSameIdentity(t *testing.T) {
	store := NewStore()

	// 100 concurrent read-modify-write updates against one identity must
	// not lose any increment.
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(7, func(sess *Session) error {
				tags := sess.LastContent
				if tags == nil {
					tags = &post.Content{}
					sess.LastContent = tags
				}
				tags.Hashtags = append(tags.Hashtags, "#kawa")
				return nil
			})
		}()
	}
	wg.Wait()

	sess := store.Get(7)
	if sess == nil || sess.LastContent == nil {
		t.Fatal("expected session with content")
	}
	if got := len(sess.LastContent.Hashtags); got != n {
		t.Errorf("lost updates: got %d appends, want %d", got, n)
	}
}

func TestUpdateDistinctIdentitiesDoNotCrossWrite(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for id := int64(1); id <= 8; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = store.Update(id, func(sess *Session) error {
					sess.MediaPath = "photo"
					sess.Note = noteFor(id)
					return nil
				})
			}
		}(id)
	}
	wg.Wait()

	for id := int64(1); id <= 8; id++ {
		sess := store.Get(id)
		if sess == nil {
			t.Fatalf("missing session for identity %d", id)
		}
		if sess.Note != noteFor(id) {
			t.Errorf("identity %d note = %q, cross-written", id, sess.Note)
		}
	}
}

func noteFor(id int64) string {
	return string(rune('a' + id))
}

func TestStartCycleOverwritesPreviousCycle(t *testing.T) {
	sess := &Session{
		Identity:          1,
		Stage:             StagePublished,
		MediaPath:         "old.jpg",
		Note:              "old note",
		LastContent:       post.Fallback(),
		PendingCorrection: "shorter",
	}

	sess.StartCycle("new.jpg", "latte")

	if sess.Stage != StageMediaReceived {
		t.Errorf("stage = %v, want %v", sess.Stage, StageMediaReceived)
	}
	if sess.MediaPath != "new.jpg" || sess.Note != "latte" {
		t.Errorf("media/note not replaced: %q %q", sess.MediaPath, sess.Note)
	}
	if sess.LastContent != nil || sess.PendingCorrection != "" {
		t.Error("expected previous content and correction cleared")
	}
}
