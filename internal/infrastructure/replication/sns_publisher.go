package replication

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/domain/shared"
	"github.com/sales/backend/internal/infrastructure/config"
)

// snsAPI is the slice of the SNS client the publisher needs
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes replication messages to an SNS topic. The SDK
// handles transient retries; a returned error means delivery failed and the
// caller must compensate.
type SNSPublisher struct {
	client   snsAPI
	topicARN string
	logger   *zap.Logger
}

// NewSNSPublisher creates an SNS-backed gateway from AWS configuration.
// A non-empty endpoint points the client at LocalStack.
func NewSNSPublisher(ctx context.Context, cfg *config.AWSConfig, logger *zap.Logger) (*SNSPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &SNSPublisher{
		client:   client,
		topicARN: cfg.ProductsTopic,
		logger:   logger,
	}, nil
}

// newSNSPublisherWithClient wires an existing client, used by tests
func newSNSPublisherWithClient(client snsAPI, topicARN string, logger *zap.Logger) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN, logger: logger}
}

// Send publishes the message envelope to the topic and returns the message id
func (p *SNSPublisher) Send(ctx context.Context, msg Message) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to serialize message: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		p.logger.Error("sns publish failed",
			zap.String("topic", p.topicARN),
			zap.String("process", msg.Process),
			zap.Error(err),
		)
		return "", shared.ErrTransport
	}
	return aws.ToString(out.MessageId), nil
}

// Ensure SNSPublisher implements Gateway
var _ Gateway = (*SNSPublisher)(nil)
