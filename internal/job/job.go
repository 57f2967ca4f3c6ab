package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/josenarvaezp/curate/internal/access"
	"github.com/josenarvaezp/curate/internal/logs"
	"github.com/josenarvaezp/curate/internal/params"
	"github.com/josenarvaezp/curate/internal/queues"
)

const (
	StatusSucceeded = "SUCCEEDED"
)

var ErrAlreadyCommitted = errors.New("job already committed")

// Summary describes what a job run read and wrote
type Summary struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	ObjectsRead int      `json:"objectsRead"`
	Records     int      `json:"records"`
	Replaced    int      `json:"objectsReplaced"`
	Files       []string `json:"files"`
}

// CompletionMessage is the message sent to the done queue on commit
type CompletionMessage struct {
	JobName     string    `json:"jobName"`
	RunID       uuid.UUID `json:"runID"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	Summary
}

// Job is a single run of a named job. It is initialised with the job name and
// the resolved arguments and must be committed once its work succeeds.
type Job struct {
	Name      string
	RunID     uuid.UUID
	Args      params.Options
	StartedAt time.Time

	session   *Session
	logger    *log.Entry
	hook      *logs.CloudWatchHook
	committed bool
}

// Init starts a job run. The run gets its own logger carrying the job name
// and run id, and ships its entries to CloudWatch when a log group is set.
func Init(session *Session, name string, args params.Options) *Job {
	job := &Job{
		Name:      name,
		RunID:     uuid.New(),
		Args:      args,
		StartedAt: time.Now().UTC(),
		session:   session,
	}

	std := log.StandardLogger()
	logger := log.New()
	logger.SetOutput(std.Out)
	logger.SetFormatter(std.Formatter)
	logger.SetLevel(std.GetLevel())

	if session.Config.LogGroup != "" && session.LogsAPI != nil {
		job.hook = logs.NewCloudWatchHook(
			session.LogsAPI,
			session.Config.LogGroup,
			fmt.Sprintf("%s/%s", name, job.RunID.String()),
		)
		logger.AddHook(job.hook)
	}

	job.logger = logger.WithFields(log.Fields{
		"Job name": name,
		"Run ID":   job.RunID.String(),
	})
	job.logger.Info("job started")

	return job
}

// Logger returns the logger of the run
func (j *Job) Logger() *log.Entry {
	return j.logger
}

// Commit marks the run as successfully completed. A run can only be
// committed once; a commit whose completion message could not be sent may
// be retried.
func (j *Job) Commit(ctx context.Context, summary Summary) error {
	if j.committed {
		return ErrAlreadyCommitted
	}

	j.logger.WithFields(log.Fields{
		"Objects read":     summary.ObjectsRead,
		"Records":          summary.Records,
		"Files written":    len(summary.Files),
		"Objects replaced": summary.Replaced,
	}).Info("job committed")

	if j.session.Config.DoneQueue != "" {
		if err := j.sendCompletion(ctx, summary); err != nil {
			j.logger.WithError(err).Error("could not send completion message")
			j.flush(ctx)
			return err
		}
	}
	j.committed = true

	j.flush(ctx)
	return nil
}

// Fail records the error of a run that will not be committed
func (j *Job) Fail(ctx context.Context, err error) {
	j.logger.WithError(err).Error("job failed")
	j.flush(ctx)
}

func (j *Job) sendCompletion(ctx context.Context, summary Summary) error {
	queueURL, err := j.doneQueueURL(ctx)
	if err != nil {
		return err
	}

	message := CompletionMessage{
		JobName:     j.Name,
		RunID:       j.RunID,
		Status:      StatusSucceeded,
		StartedAt:   j.StartedAt,
		CompletedAt: time.Now().UTC(),
		Summary:     summary,
	}
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	_, err = j.session.QueuesAPI.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
	})

	return err
}

func (j *Job) doneQueueURL(ctx context.Context) (string, error) {
	conf := j.session.Config

	accountID := conf.AccountID
	if accountID == "" && !conf.Local {
		var err error
		accountID, err = access.AccountID(ctx, j.session.IdentityAPI)
		if err != nil {
			return "", err
		}
	}

	var local *queues.LocalEndpoint
	if conf.Local {
		local = &queues.LocalEndpoint{Host: conf.LocalstackHost, Port: conf.LocalstackPort}
	}

	return queues.GetQueueURL(conf.DoneQueue, conf.Region, accountID, local), nil
}

func (j *Job) flush(ctx context.Context) {
	if j.hook == nil {
		return
	}

	if err := j.hook.Flush(ctx); err != nil {
		// the hook is attached to this logger, write to the standard one
		log.WithError(err).Error("could not ship job logs")
	}
}
