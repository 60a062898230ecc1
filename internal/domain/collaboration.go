package domain

import "time"

type Collaboration struct {
	CollaborationID   string          `json:"id" dynamodbav:"collaboration_id"`
	CreatorID         string          `json:"creatorId" dynamodbav:"creator_id"`
	CreatorName       string          `json:"creatorName" dynamodbav:"creator_name"`
	Title             string          `json:"title" dynamodbav:"title"`
	ContentCategory   string          `json:"contentCategory" dynamodbav:"content_category"`
	CollaborationType string          `json:"collaborationType" dynamodbav:"collaboration_type"`
	Description       string          `json:"description" dynamodbav:"description"`
	Timeline          string          `json:"timeline" dynamodbav:"timeline"`
	Platform          string          `json:"platform,omitempty" dynamodbav:"platform"`
	ChannelLink       string          `json:"channelLink,omitempty" dynamodbav:"channel_link"`
	Email             string          `json:"email" dynamodbav:"email"`
	Open              bool            `json:"open" dynamodbav:"open"`
	Requests          []CollabRequest `json:"collabs" dynamodbav:"requests,omitempty"`
	PostedDate        time.Time       `json:"postedDate" dynamodbav:"posted_date"`
}

// CollabRequest is a request to join a collaboration.
type CollabRequest struct {
	RequestID      string `json:"id" dynamodbav:"request_id"`
	RequesterName  string `json:"requesterName" dynamodbav:"requester_name"`
	RequesterEmail string `json:"requesterEmail" dynamodbav:"requester_email"`
	Message        string `json:"message" dynamodbav:"message"`
	AppliedDate    string `json:"appliedDate" dynamodbav:"applied_date"` // YYYY-MM-DD
}

type CreateCollaborationRequest struct {
	Title             string `json:"title" validate:"required"`
	ContentCategory   string `json:"contentCategory"`
	CollaborationType string `json:"collaborationType"`
	Description       string `json:"description" validate:"required"`
	Timeline          string `json:"timeline"`
	Platform          string `json:"platform"`
	ChannelLink       string `json:"channelLink" validate:"omitempty,url"`
	Email             string `json:"email" validate:"omitempty,email"`
}

type CollabApplyRequest struct {
	RequesterName  string `json:"requesterName" validate:"required"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
	Message        string `json:"message"`
	AppliedDate    string `json:"appliedDate"`
}
