package tests

import (
	"context"
	"testing"

	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
)

// RunSessionStoreContract is a reusable test suite that verifies an adapter
// complies with ports.SessionStore semantics.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		if err != domain.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		s := domain.NewSession("contract-rt", "q1")
		_ = s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
		s.CurrentQuestionID = "q2"

		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "contract-rt")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.CurrentQuestionID != "q2" {
			t.Errorf("position mismatch: got %q, want %q", loaded.CurrentQuestionID, "q2")
		}
		if len(loaded.Steps) != 1 || loaded.Steps[0].AnswerID != "a1" {
			t.Errorf("history mismatch: got %+v", loaded.Steps)
		}
	})

	t.Run("Load_Isolation", func(t *testing.T) {
		s := domain.NewSession("contract-iso", "q1")
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "contract-iso")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		loaded.CurrentQuestionID = "mutated"
		loaded.Steps = append(loaded.Steps, domain.AnsweredStep{QuestionID: "x", AnswerID: "y"})

		again, err := store.Load(ctx, "contract-iso")
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if again.CurrentQuestionID != "q1" || len(again.Steps) != 0 {
			t.Errorf("caller mutation leaked into store: %+v", again)
		}
	})

	t.Run("List_Contains_Saved", func(t *testing.T) {
		if err := store.Save(ctx, domain.NewSession("contract-list", "q1")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == "contract-list" {
				found = true
			}
		}
		if !found {
			t.Errorf("saved session missing from list: %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Save(ctx, domain.NewSession("contract-del", "q1")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Delete(ctx, "contract-del"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "contract-del"); err != domain.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}
