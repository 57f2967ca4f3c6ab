package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/josenarvaezp/curate/internal/access"
	"github.com/josenarvaezp/curate/mocks"
	"github.com/stretchr/testify/assert"
)

func Test_AccountID_HappyPath(t *testing.T) {
	ctx := context.Background()

	stsMock := new(mocks.IdentityAPI)
	stsMock.On("GetCallerIdentity", ctx, &sts.GetCallerIdentityInput{}).
		Return(&sts.GetCallerIdentityOutput{Account: aws.String("000000000000")}, nil)

	account, err := access.AccountID(ctx, stsMock)
	assert.Nil(t, err)
	assert.Equal(t, "000000000000", account)
}

func Test_AccountID_UnhappyPath(t *testing.T) {
	ctx := context.Background()

	stsMock := new(mocks.IdentityAPI)
	stsMock.On("GetCallerIdentity", ctx, &sts.GetCallerIdentityInput{}).
		Return(nil, errors.New("mock expired token")).Once()
	stsMock.On("GetCallerIdentity", ctx, &sts.GetCallerIdentityInput{}).
		Return(&sts.GetCallerIdentityOutput{}, nil).Once()

	account, err := access.AccountID(ctx, stsMock)
	assert.Equal(t, "", account)
	assert.EqualError(t, err, "mock expired token")

	account, err = access.AccountID(ctx, stsMock)
	assert.Equal(t, "", account)
	assert.NotNil(t, err)
}
