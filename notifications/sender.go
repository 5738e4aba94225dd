package notifications

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

type SNSClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// PublishJobEvents sends a single summary of the given jobs to the topic.
// Nothing is sent without a topic or without events.
func PublishJobEvents(ctx context.Context, snsClient SNSClient, topicARN string, events []JobEvent) error {
	if topicARN == "" || len(events) == 0 {
		return nil
	}

	output, err := snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String("AWS Backup job started"),
		Message:  aws.String(FormatJobMessage(events)),
	})
	if err != nil {
		return fmt.Errorf("unable to publish SNS message: %w", err)
	}

	log.Info().
		Str("topic", topicARN).
		Str("message_id", aws.ToString(output.MessageId)).
		Int("jobs", len(events)).
		Msg("Published job summary")
	return nil
}
