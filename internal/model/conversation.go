package model

// ConversationItem is one recorded guest exchange: the question that was
// forwarded to the automation webhook and the reply that came back.
type ConversationItem struct {
	PK             string `dynamodbav:"pk"`
	ConversationID string `dynamodbav:"conversationId"`
	UserID         string `dynamodbav:"userId"`
	Question       string `dynamodbav:"question"`
	Answer         string `dynamodbav:"answer,omitempty"`
	Topic          string `dynamodbav:"topic,omitempty"`
	Fallback       bool   `dynamodbav:"fallback,omitempty"`
	CreatedAt      string `dynamodbav:"createdAt"`
}

type ContactLeadItem struct {
	PK        string `dynamodbav:"pk"`
	LeadID    string `dynamodbav:"leadId"`
	UserID    string `dynamodbav:"userId"`
	Name      string `dynamodbav:"name"`
	Phone     string `dynamodbav:"phone"`
	Email     string `dynamodbav:"email"`
	Source    string `dynamodbav:"source"`
	CreatedAt string `dynamodbav:"createdAt"`
}

type UploadItem struct {
	UploadID   string `dynamodbav:"uploadId"`
	FileName   string `dynamodbav:"fileName"`
	FileSize   int64  `dynamodbav:"fileSize"`
	UploadedAt string `dynamodbav:"uploadedAt"`
}
