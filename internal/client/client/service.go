package client

import (
	"context"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
)

// Client is the remote side of record sync.
type Client interface {
	UpsertRecord(ctx context.Context, rec *models.FieldRecord) error
	ListRecords(ctx context.Context) ([]models.FieldRecord, error)
	Ping(ctx context.Context) error
	SpeechURL(text string, lang models.Language) string
}
