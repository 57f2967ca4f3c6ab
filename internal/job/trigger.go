package job

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/goccy/go-json"

	"github.com/josenarvaezp/curate/internal/faas"
	"github.com/josenarvaezp/curate/internal/params"
)

// status returned by asynchronous invocations that were queued
const asyncInvokeStatusCode int32 = 202

// Trigger starts a job run deployed as a function. The function is invoked
// asynchronously with the options as its event.
func Trigger(ctx context.Context, api faas.FaasAPI, functionName string, options params.Options) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return err
	}

	output, err := api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return err
	}

	if output.StatusCode != asyncInvokeStatusCode {
		return fmt.Errorf("invoking %s: unexpected status code %d", functionName, output.StatusCode)
	}

	return nil
}
