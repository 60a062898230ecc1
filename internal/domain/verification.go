package domain

// PendingVerification is an issued one-time code awaiting validation.
// ExpiresAt is a Unix timestamp (seconds), also used as the DynamoDB TTL attribute.
type PendingVerification struct {
	Identity  string `json:"identity" dynamodbav:"identity"`
	Code      string `json:"-" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
