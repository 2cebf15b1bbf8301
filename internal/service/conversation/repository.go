package conversation

import (
	"context"

	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

type Repository interface {
	CreateConversation(ctx context.Context, conversation model.ConversationItem) error
	ListConversations(ctx context.Context) ([]model.ConversationItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateConversation(ctx context.Context, conversation model.ConversationItem) error {
	return r.db.Client.PutItem(ctx, model.ConversationsTable, conversation)
}

func (r *DynamoRepository) ListConversations(ctx context.Context) ([]model.ConversationItem, error) {
	items, err := r.db.Client.ScanAllItems(ctx, model.ConversationsTable)
	if err != nil {
		return nil, err
	}

	conversations := make([]model.ConversationItem, 0, len(items))
	for _, item := range items {
		var conversation model.ConversationItem
		if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
			return nil, err
		}
		conversations = append(conversations, conversation)
	}
	return conversations, nil
}
