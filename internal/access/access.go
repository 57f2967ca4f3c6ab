package access

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IdentityAPI is an interface used to mock API calls made to the aws STS service
type IdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// AccountID returns the account of the credentials in use
func AccountID(ctx context.Context, api IdentityAPI) (string, error) {
	output, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}

	account := aws.ToString(output.Account)
	if account == "" {
		return "", errors.New("caller identity has no account")
	}

	return account, nil
}
