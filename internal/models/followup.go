package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Followup struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientRef    primitive.ObjectID `bson:"client_ref" json:"clientRef"`
	MemberID     string             `bson:"member_id,omitempty" json:"memberId,omitempty"`
	FollowupType string             `bson:"followup_type" json:"followupType"`
	ScheduleDate string             `bson:"schedule_date" json:"scheduleDate"`
	Response     string             `bson:"response,omitempty" json:"response,omitempty"`
	CreatedBy    string             `bson:"created_by" json:"createdBy"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
