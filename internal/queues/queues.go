package queues

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// QueuesAPI is an interface used to mock API calls made to the aws SQS service
type QueuesAPI interface {
	SendMessage(
		ctx context.Context,
		params *sqs.SendMessageInput,
		optFns ...func(*sqs.Options),
	) (*sqs.SendMessageOutput, error)
}

// LocalEndpoint is the localstack host and port queues are reached through
type LocalEndpoint struct {
	Host string
	Port int
}

// GetQueueURL returns the queue URL based on its name. When local is not
// nil the URL points to localstack.
func GetQueueURL(queueName string, region string, accountID string, local *LocalEndpoint) string {
	var queueURL string

	if local != nil {
		queueURL = fmt.Sprintf(
			"http://%s:%d/000000000000/%s",
			local.Host,
			local.Port,
			queueName,
		)
	} else {
		queueURL = fmt.Sprintf(
			"https://sqs.%s.amazonaws.com/%s/%s",
			region,
			accountID,
			queueName,
		)
	}

	return queueURL
}
