package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

const (
	LOCALSTACK_HOST_NAME = "localhost"
	LOCALSTACK_PORT      = 4566

	localstackRegion = "us-east-1"
	localstackKey    = "dummyKey"
)

// InitCfg loads the aws configuration from the environment and shared files
func InitCfg(region string) (*aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// InitLocalCfg creates an aws configuration pointing to localstack
func InitLocalCfg(host string, port int, region string) (*aws.Config, error) {
	if region == "" {
		region = localstackRegion
	}

	localstackEndpointResolver := aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:           fmt.Sprintf("http://%s:%d", host, port),
			SigningRegion: region,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithEndpointResolver(localstackEndpointResolver),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(localstackKey, localstackKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
