package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Event is the JSON message fanned out for every notification.
// Recipients subscribe to the topic for push, SMS or analytics.
type Event struct {
	Kind       string    `json:"kind"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes notification events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, e Event) error
}

type publishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type publisher struct {
	client   publishAPI
	topicARN string
}

// NewPublisher creates an SNS client for awsCfg and binds it to topicARN.
func NewPublisher(awsCfg aws.Config, endpoint, topicARN string) EventPublisher {
	var opts []func(*sns.Options)
	if endpoint != "" {
		opts = append(opts, func(o *sns.Options) { o.BaseEndpoint = aws.String(endpoint) })
	}
	return &publisher{client: sns.NewFromConfig(awsCfg, opts...), topicARN: topicARN}
}

func (p *publisher) PublishEvent(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"kind": {DataType: aws.String("String"), StringValue: aws.String(e.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish %s: %w", e.Kind, err)
	}
	return nil
}
