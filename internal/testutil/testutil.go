// Package testutil provides shared fixtures for package tests: an isolated
// database and a small labeled SMS corpus.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/akashdeo/smspend/internal/model"
	"github.com/akashdeo/smspend/internal/storage"
)

// SetupTestDB creates a migrated SQLite database in a temp directory. It is
// removed automatically when the test finishes.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return store
}

// SampleCorpus returns a small but separable labeled corpus covering the
// main categories, for training in tests.
func SampleCorpus() []model.TrainingExample {
	return []model.TrainingExample{
		{Text: "Rs.500 debited from A/c X1234 at ATM on 01Jan", Label: model.CategoryDebit},
		{Text: "INR 1200 debited towards electricity bill payment", Label: model.CategoryDebit},
		{Text: "Rs.89 spent via card at grocery store", Label: model.CategoryDebit},
		{Text: "Rs.2500 credited to A/c X1234 by NEFT", Label: model.CategoryCredit},
		{Text: "Salary of Rs.45000 credited to your account", Label: model.CategoryCredit},
		{Text: "INR 300 received from Ramesh via IMPS", Label: model.CategoryCredit},
		{Text: "Refund of Rs.176 processed to your wallet", Label: model.CategoryRefund},
		{Text: "Cashback Rs.20 credited against txn reversal", Label: model.CategoryRefund},
		{Text: "Paid Rs.349 to Swiggy via UPI", Label: model.CategoryShoppingUPI},
		{Text: "UPI payment of Rs.120 to PhonePe merchant successful", Label: model.CategoryShoppingUPI},
		{Text: "PNR 1234567890 CNF train 12951 coach B2", Label: model.CategoryTravel},
		{Text: "Your flight ticket is confirmed, boarding at 0600", Label: model.CategoryTravel},
		{Text: "OTP for login is 445566 do not share", Label: model.CategoryAccountService},
		{Text: "Your monthly statement is ready for download", Label: model.CategoryAccountService},
	}
}
