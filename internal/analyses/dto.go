package analyses

import "time"

// HistoryItemResponse is the outward-facing representation of a response
// record in chat-history listings. DocumentID is null for general
// questions asked without document context.
type HistoryItemResponse struct {
	ResponseID   string    `json:"responseId"`
	DocumentID   *string   `json:"documentId"`
	DocumentName string    `json:"documentName"`
	UserMessage  string    `json:"userMessage"`
	AIResponse   string    `json:"aiResponse"`
	Timestamp    time.Time `json:"timestamp"`
	Type         string    `json:"type"`
}

func toHistoryItem(record ResponseRecord) HistoryItemResponse {
	item := HistoryItemResponse{
		ResponseID:   record.ResponseID,
		DocumentName: record.DocumentName,
		UserMessage:  record.UserMessage,
		AIResponse:   record.AIResponse,
		Timestamp:    record.Timestamp,
		Type:         record.Type,
	}
	if record.DocumentID != "" {
		id := record.DocumentID
		item.DocumentID = &id
	}
	return item
}
