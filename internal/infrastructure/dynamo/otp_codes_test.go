package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wcontent-api/internal/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var otpNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestOTPStore_Put_WritesExpiry(t *testing.T) {
	api := &mockAPI{}
	var captured *dynamodb.PutItemInput
	api.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.PutItemInput)
	}).Return(nil)

	s := NewOTPStore(api, "otp_codes", fixedClock{otpNow})
	require.NoError(t, s.Put(context.Background(), "a@x.io", "123456", 10*time.Minute))

	require.NotNil(t, captured)
	assert.Equal(t, "otp_codes", aws.ToString(captured.TableName))
	var v domain.PendingVerification
	require.NoError(t, attributevalue.UnmarshalMap(captured.Item, &v))
	assert.Equal(t, "a@x.io", v.Identity)
	assert.Equal(t, "123456", v.Code)
	assert.Equal(t, otpNow.Add(10*time.Minute).Unix(), v.ExpiresAt)
}

func TestOTPStore_Validate_ConsumesOnMatch(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		code := in.ExpressionAttributeValues[":code"].(*types.AttributeValueMemberS).Value
		now := in.ExpressionAttributeValues[":now"].(*types.AttributeValueMemberN).Value
		return aws.ToString(in.ConditionExpression) == "#c = :code AND #e > :now" &&
			code == "123456" && now == "1772359200"
	})).Return(nil).Once()

	s := NewOTPStore(api, "otp_codes", fixedClock{otpNow})
	ok, err := s.Validate(context.Background(), "a@x.io", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	api.AssertExpectations(t)
}

func TestOTPStore_Validate_RejectedDropsExpired(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, deleteWithCondition("#c = :code AND #e > :now")).Return(conditionFailed()).Once()
	api.On("DeleteItem", mock.Anything, deleteWithCondition("#e <= :now")).Return(conditionFailed()).Once()

	s := NewOTPStore(api, "otp_codes", fixedClock{otpNow})
	ok, err := s.Validate(context.Background(), "a@x.io", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	api.AssertExpectations(t)
}

func TestOTPStore_Validate_BackendError(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, mock.Anything).Return(errors.New("throttled")).Once()

	s := NewOTPStore(api, "otp_codes", fixedClock{otpNow})
	ok, err := s.Validate(context.Background(), "a@x.io", "123456")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "throttled")
}
