package logs

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	log "github.com/sirupsen/logrus"
)

// events sent per PutLogEvents call
const maxEventsPerBatch = 1000

// CloudWatchHook is a logrus hook that buffers the job's log entries and
// ships them to a CloudWatch log stream when flushed
type CloudWatchHook struct {
	LogsAPI LogsAPI
	Group   string
	Stream  string

	formatter log.Formatter
	mu        sync.Mutex
	events    []types.InputLogEvent
}

// NewCloudWatchHook creates a hook writing to the given group and stream
func NewCloudWatchHook(api LogsAPI, group, stream string) *CloudWatchHook {
	return &CloudWatchHook{
		LogsAPI:   api,
		Group:     group,
		Stream:    stream,
		formatter: &log.JSONFormatter{},
	}
}

// Levels returns the levels the hook fires for
func (h *CloudWatchHook) Levels() []log.Level {
	return log.AllLevels
}

// Fire buffers the entry
func (h *CloudWatchHook) Fire(entry *log.Entry) error {
	message, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, types.InputLogEvent{
		Message:   aws.String(strings.TrimRight(string(message), "\n")),
		Timestamp: aws.Int64(entry.Time.UnixNano() / int64(1e6)),
	})

	return nil
}

// Flush creates the log group and stream if needed and sends the buffered
// entries. Entries are dropped from the buffer once sent.
func (h *CloudWatchHook) Flush(ctx context.Context) error {
	h.mu.Lock()
	events := h.events
	h.events = nil
	h.mu.Unlock()

	if len(events) == 0 {
		return nil
	}

	_, err := h.LogsAPI.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(h.Group),
	})
	if err != nil && !alreadyExists(err) {
		return err
	}

	_, err = h.LogsAPI.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(h.Group),
		LogStreamName: aws.String(h.Stream),
	})
	if err != nil && !alreadyExists(err) {
		return err
	}

	for start := 0; start < len(events); start += maxEventsPerBatch {
		end := start + maxEventsPerBatch
		if end > len(events) {
			end = len(events)
		}

		_, err := h.LogsAPI.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
			LogGroupName:  aws.String(h.Group),
			LogStreamName: aws.String(h.Stream),
			LogEvents:     events[start:end],
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// alreadyExists checks if the log group or stream being created already exists
func alreadyExists(err error) bool {
	var exists *types.ResourceAlreadyExistsException
	return errors.As(err, &exists)
}
