package dto

import "go.mongodb.org/mongo-driver/bson/primitive"

// FollowupCreateMessage is the payload published on the follow-up topic.
type FollowupCreateMessage struct {
	RecordReference string `json:"record_reference"`
	MemberID        string `json:"member_id,omitempty"`
	Type            string `json:"type"`
	ScheduleDate    string `json:"schedule_date"`
	Response        string `json:"response,omitempty"`
	Status          string `json:"status"`
	CreatedBy       string `json:"created_by,omitempty"`

	// MessageID is the broker message id, set by the consumer.
	MessageID string `json:"-"`
}

type UpdateFollowupStatusRequest struct {
	ID     primitive.ObjectID `json:"-"`
	Status string             `json:"status"`
}
