package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/wcontent-api/internal/domain"
)

// AccountRepo provides typed DynamoDB operations for the accounts table.
type AccountRepo struct {
	client    API
	tableName string
}

func NewAccountRepo(client API, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

// Create stores a new account. It fails with domain.ErrConflict if the id is taken.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldAccountID},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("account %s already exists: %w", a.AccountID, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return getItem[domain.Account](ctx, r.client, r.tableName, fieldAccountID, accountID, "User")
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.queryOne(ctx, indexEmail, fieldEmail, email)
}

func (r *AccountRepo) GetByGoogleSub(ctx context.Context, sub string) (*domain.Account, error) {
	return r.queryOne(ctx, indexGoogleSub, fieldGoogleSub, sub)
}

func (r *AccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	return scanAll[domain.Account](ctx, r.client, r.tableName)
}

// Update applies a partial SET on an existing account.
func (r *AccountRepo) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	ue.Names["#id"] = fieldAccountID
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldAccountID, accountID),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, accountID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey(fieldAccountID, accountID),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldAccountID},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// AddCollaboration links a collaboration id to the account.
func (r *AccountRepo) AddCollaboration(ctx context.Context, accountID, collaborationID string) error {
	return appendToList(ctx, r.client, r.tableName, fieldAccountID, accountID, fieldCollaborations, collaborationID, "User")
}

// RemoveCollaboration unlinks a collaboration id. Unknown ids are ignored.
func (r *AccountRepo) RemoveCollaboration(ctx context.Context, accountID, collaborationID string) error {
	a, err := r.Get(ctx, accountID)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(a.Collaborations))
	for _, c := range a.Collaborations {
		if c != collaborationID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(a.Collaborations) {
		return nil
	}
	return r.Update(ctx, accountID, map[string]interface{}{fieldCollaborations: kept})
}

func (r *AccountRepo) queryOne(ctx context.Context, index, attr, value string) (*domain.Account, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", index, err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Items[0], &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &a, nil
}
