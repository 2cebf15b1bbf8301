package upload

import (
	"context"

	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/model"
)

type Repository interface {
	CreateUpload(ctx context.Context, upload model.UploadItem) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateUpload(ctx context.Context, upload model.UploadItem) error {
	return r.db.Client.PutItem(ctx, model.UploadsTable, upload)
}
