package dto

type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type ChatAnalyticsResponse struct {
	TotalSessions     int          `json:"totalSessions"`
	QuestionsPerTopic []TopicCount `json:"questionsPerTopic"`
}
