package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/wcontent-api/internal/domain"
)

// CollaborationRepo stores collaborations with their requests embedded.
type CollaborationRepo struct {
	client    API
	tableName string
}

func NewCollaborationRepo(client API, tableName string) *CollaborationRepo {
	return &CollaborationRepo{client: client, tableName: tableName}
}

func (r *CollaborationRepo) Put(ctx context.Context, c *domain.Collaboration) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal collaboration: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put collaboration: %w", err)
	}
	return nil
}

func (r *CollaborationRepo) Get(ctx context.Context, collaborationID string) (*domain.Collaboration, error) {
	return getItem[domain.Collaboration](ctx, r.client, r.tableName, fieldCollaborationID, collaborationID, "Collaboration")
}

func (r *CollaborationRepo) List(ctx context.Context) ([]domain.Collaboration, error) {
	return scanAll[domain.Collaboration](ctx, r.client, r.tableName)
}

func (r *CollaborationRepo) ListByCreator(ctx context.Context, creatorID string) ([]domain.Collaboration, error) {
	return queryIndex[domain.Collaboration](ctx, r.client, r.tableName, indexCreatorPosted, fieldCreatorID, creatorID)
}

// Delete removes the collaboration. Deleting a missing id is not an error.
func (r *CollaborationRepo) Delete(ctx context.Context, collaborationID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldCollaborationID, collaborationID),
	}); err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	return nil
}

func (r *CollaborationRepo) AddRequest(ctx context.Context, collaborationID string, req domain.CollabRequest) error {
	return appendToList(ctx, r.client, r.tableName, fieldCollaborationID, collaborationID, fieldRequests, req, "Collaboration")
}
