package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/pkg/clock"
)

// OTPStore keeps pending codes in the otp_codes table.
// PK: identity. expires_at carries the TTL (Unix seconds) so DynamoDB reaps
// stale rows; validation compares against the same value.
type OTPStore struct {
	client    API
	tableName string
	clock     clock.Clocker
}

func NewOTPStore(client API, tableName string, c clock.Clocker) *OTPStore {
	if c == nil {
		c = clock.New()
	}
	return &OTPStore{client: client, tableName: tableName, clock: c}
}

func (s *OTPStore) Put(ctx context.Context, identity, code string, ttl time.Duration) error {
	v := &domain.PendingVerification{
		Identity:  identity,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(ttl).Unix(),
	}
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put verification: %w", err)
	}
	return nil
}

// Validate consumes the row with a conditional delete, so only one caller can
// win a given code.
func (s *OTPStore) Validate(ctx context.Context, identity, code string) (bool, error) {
	now := strconv.FormatInt(s.clock.Now().Unix(), 10)
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 strKey(fieldIdentity, identity),
		ConditionExpression: aws.String("#c = :code AND #e > :now"),
		ExpressionAttributeNames: map[string]string{
			"#c": fieldCode,
			"#e": fieldExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
			":now":  &types.AttributeValueMemberN{Value: now},
		},
	})
	if err == nil {
		return true, nil
	}
	if !isConditionFailed(err) {
		return false, fmt.Errorf("consume verification: %w", err)
	}
	s.dropExpired(ctx, identity, now)
	return false, nil
}

// dropExpired removes the row only if it has expired; TTL deletion can lag by hours.
func (s *OTPStore) dropExpired(ctx context.Context, identity, now string) {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      strKey(fieldIdentity, identity),
		ConditionExpression:      aws.String("#e <= :now"),
		ExpressionAttributeNames: map[string]string{"#e": fieldExpiresAt},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: now},
		},
	})
	if err != nil && !isConditionFailed(err) {
		slog.WarnContext(ctx, "could not drop expired verification", "err", err)
	}
}
