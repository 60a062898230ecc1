package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wcontent-api/internal/domain"
)

func TestAccountRepo_Create_ConflictOnExistingID(t *testing.T) {
	api := &mockAPI{}
	api.On("PutItem", mock.Anything, mock.Anything).Return(conditionFailed())

	err := NewAccountRepo(api, "accounts").Create(context.Background(), &domain.Account{AccountID: "a1"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestAccountRepo_Create_OmitsEmptyGoogleSub(t *testing.T) {
	api := &mockAPI{}
	var captured *dynamodb.PutItemInput
	api.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.PutItemInput)
	}).Return(nil)

	require.NoError(t, NewAccountRepo(api, "accounts").Create(context.Background(), &domain.Account{AccountID: "a1", Email: "a@x.io"}))
	_, hasSub := captured.Item[fieldGoogleSub]
	assert.False(t, hasSub, "empty GSI key must not be written")
	_, hasCollabs := captured.Item[fieldCollaborations]
	assert.False(t, hasCollabs)
}

func TestAccountRepo_Get_NotFound(t *testing.T) {
	api := &mockAPI{}
	api.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewAccountRepo(api, "accounts").Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAccountRepo_ExistsByEmail(t *testing.T) {
	item, err := attributevalue.MarshalMap(domain.Account{AccountID: "a1", Email: "a@x.io"})
	require.NoError(t, err)

	api := &mockAPI{}
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS).Value == "a@x.io"
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil)
	api.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	repo := NewAccountRepo(api, "accounts")
	exists, err := repo.ExistsByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(context.Background(), "b@x.io")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAccountRepo_Update_MissingAccount(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(conditionFailed())

	err := NewAccountRepo(api, "accounts").Update(context.Background(), "a1", map[string]interface{}{"username": "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAccountRepo_AddCollaboration_UsesListAppend(t *testing.T) {
	api := &mockAPI{}
	var captured *dynamodb.UpdateItemInput
	api.On("UpdateItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.UpdateItemInput)
	}).Return(nil)

	require.NoError(t, NewAccountRepo(api, "accounts").AddCollaboration(context.Background(), "a1", "c1"))
	assert.Equal(t, "SET #l = list_append(if_not_exists(#l, :empty), :elem)", aws.ToString(captured.UpdateExpression))
	assert.Equal(t, fieldCollaborations, captured.ExpressionAttributeNames["#l"])
	elem := captured.ExpressionAttributeValues[":elem"].(*types.AttributeValueMemberL)
	require.Len(t, elem.Value, 1)
	assert.Equal(t, "c1", elem.Value[0].(*types.AttributeValueMemberS).Value)
}

func TestAccountRepo_Delete_MissingAccount(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, mock.Anything).Return(conditionFailed())

	err := NewAccountRepo(api, "accounts").Delete(context.Background(), "a1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOpportunityRepo_AddApplicant_MissingOpportunity(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.Anything).Return(conditionFailed())

	err := NewOpportunityRepo(api, "opportunities").AddApplicant(context.Background(), "o1", domain.Applicant{Name: "Bo"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCollaborationRepo_List_FollowsPages(t *testing.T) {
	c1, _ := attributevalue.MarshalMap(domain.Collaboration{CollaborationID: "c1"})
	c2, _ := attributevalue.MarshalMap(domain.Collaboration{CollaborationID: "c2"})
	api := &mockAPI{}
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool { return in.ExclusiveStartKey == nil })).
		Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{c1}, LastEvaluatedKey: strKey(fieldCollaborationID, "c1")}, nil).Once()
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool { return in.ExclusiveStartKey != nil })).
		Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{c2}}, nil).Once()

	got, err := NewCollaborationRepo(api, "collaborations").List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].CollaborationID)
	assert.Equal(t, "c2", got[1].CollaborationID)
}
