package engine

import (
	"context"

	"github.com/akashdeo/smspend/internal/model"
	"github.com/akashdeo/smspend/internal/service"
)

// gatedStorage wraps a real store and blocks GetLabeledCorpus until released,
// so tests can hold a retrain mid-flight.
type gatedStorage struct {
	service.Storage
	enter   chan struct{}
	release chan struct{}
}

func newGatedStorage(inner service.Storage) *gatedStorage {
	return &gatedStorage{
		Storage: inner,
		enter:   make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedStorage) GetLabeledCorpus(ctx context.Context) ([]model.TrainingExample, error) {
	close(g.enter)
	<-g.release
	return g.Storage.GetLabeledCorpus(ctx)
}
