package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"github.com/josenarvaezp/curate/internal/config"
	"github.com/josenarvaezp/curate/internal/job"
	"github.com/josenarvaezp/curate/internal/logs"
	"github.com/josenarvaezp/curate/internal/params"
)

// environment variables read by the function
const (
	configFileEnv     = "CURATE_CONFIG_FILE"
	localstackHostEnv = "LOCALSTACK_HOSTNAME"
)

// eventOptional are the optional parameters read from the event. The config
// file is fixed when the function starts, so CONFIG_FILE is not one of them.
var eventOptional = []string{params.DestPartition}

var session *job.Session

func init() {
	conf, err := config.Load(os.Getenv(configFileEnv))
	if err != nil {
		logrus.WithField("File name", os.Getenv(configFileEnv)).WithError(err).Error("Error reading config file")
		return
	}

	// set when running inside localstack
	if host := os.Getenv(localstackHostEnv); host != "" {
		conf.Local = true
		conf.LocalstackHost = host
	}
	logrus.SetLevel(logs.ConfigLogLevelToLevel(conf.LogLevel))

	session, err = job.NewSession(conf)
	if err != nil {
		logrus.WithError(err).Error("Error initializing session")
		return
	}
}

// HandleRequest runs the job with the event as its arguments
func HandleRequest(ctx context.Context, event map[string]string) (string, error) {
	if session == nil {
		return "", errors.New("session not initialized")
	}

	options, err := params.FromMap(event, params.Required, eventOptional)
	if err != nil {
		return "", err
	}

	// get data from context
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return "", errors.New("Error getting lambda context")
	}
	if session.Config.AccountID == "" {
		session.Config.AccountID, err = accountIDFromARN(lc.InvokedFunctionArn)
		if err != nil {
			return "", err
		}
	}

	if err := job.Execute(ctx, session, options, os.Stdout); err != nil {
		return "", err
	}

	return options.Get(params.JobName), nil
}

// accountIDFromARN returns the account of an arn such as
// arn:aws:lambda:eu-west-2:123456789012:function:curate
func accountIDFromARN(arn string) (string, error) {
	parts := strings.Split(arn, ":")
	if len(parts) <= 4 || parts[4] == "" {
		return "", fmt.Errorf("no account id in arn %q", arn)
	}

	return parts[4], nil
}

func main() {
	lambda.Start(HandleRequest)
}
