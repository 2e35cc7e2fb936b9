package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/akashdeo/smspend/internal/common"
	"github.com/akashdeo/smspend/internal/model"
	"github.com/akashdeo/smspend/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func testMessage(id, text string) model.Message {
	return model.Message{
		ID:         id,
		Text:       text,
		Owner:      "tester",
		ReceivedAt: time.Date(2025, 12, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStorage_MessageRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	msg := testMessage("msg1", "Rs.500 debited from A/c X8742")
	if err := store.SaveMessages(ctx, []model.Message{msg}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	got, err := store.GetMessageByID(ctx, "msg1")
	if err != nil {
		t.Fatalf("GetMessageByID: %v", err)
	}
	if got.Text != msg.Text || got.Owner != msg.Owner || got.Corrected {
		t.Errorf("unexpected message: %+v", got)
	}
	if got.Hash == "" {
		t.Error("hash was not populated on save")
	}

	byHash, err := store.GetMessageByHash(ctx, got.Hash)
	if err != nil {
		t.Fatalf("GetMessageByHash: %v", err)
	}
	if byHash.ID != "msg1" {
		t.Errorf("GetMessageByHash returned %s, want msg1", byHash.ID)
	}
}

func TestSQLiteStorage_MessageDeduplication(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	text := "Rs.176 credited to your Meesho Balance."
	if err := store.SaveMessages(ctx, []model.Message{testMessage("msg1", text)}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}
	// Same text under a different id is skipped.
	if err := store.SaveMessages(ctx, []model.Message{testMessage("msg2", text)}); err != nil {
		t.Fatalf("SaveMessages duplicate: %v", err)
	}

	msgs, err := store.GetMessages(ctx, service.MessageFilter{})
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("expected 1 message after dedup, got %d", len(msgs))
	}

	if _, err := store.GetMessageByID(ctx, "msg2"); !errors.Is(err, common.ErrMessageNotFound) {
		t.Errorf("expected ErrMessageNotFound for skipped duplicate, got %v", err)
	}
}

func TestSQLiteStorage_ClassificationRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	msg := testMessage("msg1", "Rs.349 debited for payment to Swiggy via UPI")
	if err := store.SaveMessages(ctx, []model.Message{msg}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	amount := 349.0
	c := model.Classification{
		MessageID:   "msg1",
		Category:    model.CategoryShoppingUPI,
		Amount:      &amount,
		Confidence:  0.95,
		Provenance:  model.ProvenanceRule,
		NeedsReview: false,
	}
	if err := store.SaveClassification(ctx, &c); err != nil {
		t.Fatalf("SaveClassification: %v", err)
	}

	got, err := store.GetClassification(ctx, "msg1")
	if err != nil {
		t.Fatalf("GetClassification: %v", err)
	}
	if got.Category != model.CategoryShoppingUPI || got.Provenance != model.ProvenanceRule {
		t.Errorf("unexpected classification: %+v", got)
	}
	if got.Amount == nil || *got.Amount != amount {
		t.Errorf("amount did not round-trip: %+v", got.Amount)
	}

	// Reclassification replaces the stored row.
	c.Category = model.CategoryDebit
	c.Provenance = model.ProvenanceModel
	c.Confidence = 0.55
	c.NeedsReview = true
	if err := store.SaveClassification(ctx, &c); err != nil {
		t.Fatalf("SaveClassification update: %v", err)
	}
	got, err = store.GetClassification(ctx, "msg1")
	if err != nil {
		t.Fatalf("GetClassification after update: %v", err)
	}
	if got.Category != model.CategoryDebit || !got.NeedsReview {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestSQLiteStorage_CorrectedFlagLifecycle(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, m := range []model.Message{
		testMessage("msg1", "Rs.500 debited at ATM"),
		testMessage("msg2", "Rs.900 credited by NEFT"),
	} {
		if err := store.SaveMessages(ctx, []model.Message{m}); err != nil {
			t.Fatalf("SaveMessages: %v", err)
		}
	}

	n, err := store.CountCorrectedPending(ctx)
	if err != nil || n != 0 {
		t.Fatalf("CountCorrectedPending = (%d, %v), want (0, nil)", n, err)
	}

	if err := store.MarkMessageCorrected(ctx, "msg1"); err != nil {
		t.Fatalf("MarkMessageCorrected: %v", err)
	}
	if err := store.MarkMessageCorrected(ctx, "missing"); !errors.Is(err, common.ErrMessageNotFound) {
		t.Errorf("expected ErrMessageNotFound, got %v", err)
	}

	n, err = store.CountCorrectedPending(ctx)
	if err != nil || n != 1 {
		t.Fatalf("CountCorrectedPending = (%d, %v), want (1, nil)", n, err)
	}

	if err := store.ResetCorrectedFlags(ctx); err != nil {
		t.Fatalf("ResetCorrectedFlags: %v", err)
	}
	n, err = store.CountCorrectedPending(ctx)
	if err != nil || n != 0 {
		t.Fatalf("CountCorrectedPending after reset = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSQLiteStorage_CorrectionsAppendOnly(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	msg := testMessage("msg1", "Rs.349 debited for Swiggy order")
	if err := store.SaveMessages(ctx, []model.Message{msg}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	base := time.Date(2025, 12, 2, 12, 0, 0, 0, time.UTC)
	for i, cat := range []model.Category{model.CategoryDebit, model.CategoryShoppingUPI} {
		c := model.Correction{
			MessageID:   "msg1",
			Text:        msg.Text,
			Category:    cat,
			CorrectedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveCorrection(ctx, &c); err != nil {
			t.Fatalf("SaveCorrection: %v", err)
		}
		if c.ID == 0 {
			t.Error("correction id not assigned")
		}
	}

	all, err := store.GetCorrections(ctx)
	if err != nil {
		t.Fatalf("GetCorrections: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 corrections, got %d", len(all))
	}
	if all[0].Category != model.CategoryDebit || all[1].Category != model.CategoryShoppingUPI {
		t.Errorf("corrections out of insertion order: %+v", all)
	}
	if !all[1].CorrectedAt.After(all[0].CorrectedAt) {
		t.Errorf("timestamps not preserved: %+v", all)
	}
}

func TestSQLiteStorage_LabeledCorpus(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	entries := []struct {
		id       string
		text     string
		category model.Category
	}{
		{"msg1", "Rs.500 debited at ATM", model.CategoryDebit},
		{"msg2", "Rs.900 credited by NEFT", model.CategoryCredit},
		{"msg3", "some unclassifiable text", model.CategoryUnknown},
	}
	for _, e := range entries {
		if err := store.SaveMessages(ctx, []model.Message{testMessage(e.id, e.text)}); err != nil {
			t.Fatalf("SaveMessages: %v", err)
		}
		c := model.Classification{
			MessageID:  e.id,
			Category:   e.category,
			Confidence: 0.9,
			Provenance: model.ProvenanceModel,
		}
		if e.category == model.CategoryUnknown {
			c.Confidence = 0
		}
		if err := store.SaveClassification(ctx, &c); err != nil {
			t.Fatalf("SaveClassification: %v", err)
		}
	}

	corpus, err := store.GetLabeledCorpus(ctx)
	if err != nil {
		t.Fatalf("GetLabeledCorpus: %v", err)
	}
	if len(corpus) != 2 {
		t.Fatalf("expected Unknown to be excluded, got %d rows", len(corpus))
	}
	for _, ex := range corpus {
		if ex.Label == model.CategoryUnknown {
			t.Errorf("Unknown label leaked into corpus: %+v", ex)
		}
	}
}

func TestSQLiteStorage_NeedsReviewFilter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i, needsReview := range []bool{true, false} {
		id := []string{"msg1", "msg2"}[i]
		msg := testMessage(id, id+" some text about payment "+id)
		if err := store.SaveMessages(ctx, []model.Message{msg}); err != nil {
			t.Fatalf("SaveMessages: %v", err)
		}
		c := model.Classification{
			MessageID:   id,
			Category:    model.CategoryOther,
			Confidence:  0.4,
			Provenance:  model.ProvenanceModel,
			NeedsReview: needsReview,
		}
		if err := store.SaveClassification(ctx, &c); err != nil {
			t.Fatalf("SaveClassification: %v", err)
		}
	}

	needs := true
	msgs, err := store.GetMessages(ctx, service.MessageFilter{NeedsReview: &needs})
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "msg1" {
		t.Errorf("expected only msg1 to need review, got %+v", msgs)
	}

	// A corrected message drops out of the review queue.
	if err := store.MarkMessageCorrected(ctx, "msg1"); err != nil {
		t.Fatalf("MarkMessageCorrected: %v", err)
	}
	msgs, err = store.GetMessages(ctx, service.MessageFilter{NeedsReview: &needs})
	if err != nil {
		t.Fatalf("GetMessages after correction: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("corrected message still flagged for review: %+v", msgs)
	}
}
