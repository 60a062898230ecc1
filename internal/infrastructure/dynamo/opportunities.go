package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/wcontent-api/internal/domain"
)

// OpportunityRepo stores opportunities with their applicants embedded.
type OpportunityRepo struct {
	client    API
	tableName string
}

func NewOpportunityRepo(client API, tableName string) *OpportunityRepo {
	return &OpportunityRepo{client: client, tableName: tableName}
}

func (r *OpportunityRepo) Put(ctx context.Context, o *domain.Opportunity) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal opportunity: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put opportunity: %w", err)
	}
	return nil
}

func (r *OpportunityRepo) Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	return getItem[domain.Opportunity](ctx, r.client, r.tableName, fieldOpportunityID, opportunityID, "Opportunity")
}

func (r *OpportunityRepo) List(ctx context.Context) ([]domain.Opportunity, error) {
	return scanAll[domain.Opportunity](ctx, r.client, r.tableName)
}

func (r *OpportunityRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error) {
	return queryIndex[domain.Opportunity](ctx, r.client, r.tableName, indexOwnerPosted, fieldOwnerID, ownerID)
}

// AddApplicant appends an applicant in a single conditional update.
func (r *OpportunityRepo) AddApplicant(ctx context.Context, opportunityID string, a domain.Applicant) error {
	return appendToList(ctx, r.client, r.tableName, fieldOpportunityID, opportunityID, fieldApplicants, a, "Opportunity")
}
