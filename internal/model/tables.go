package model

import "fmt"

const (
	ConversationsTable = "HotelConversations"
	ContactLeadsTable  = "HotelContactLeads"
	UploadsTable       = "HotelUploads"
)

func ConversationPK(userID, conversationID string) string {
	return fmt.Sprintf("%s#%s", userID, conversationID)
}

func LeadPK(userID, leadID string) string {
	return fmt.Sprintf("%s#%s", userID, leadID)
}
