package contact

import (
	"context"

	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/model"
)

type Repository interface {
	CreateLead(ctx context.Context, lead model.ContactLeadItem) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateLead(ctx context.Context, lead model.ContactLeadItem) error {
	return r.db.Client.PutItem(ctx, model.ContactLeadsTable, lead)
}
