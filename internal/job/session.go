package job

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/josenarvaezp/curate/internal/access"
	"github.com/josenarvaezp/curate/internal/config"
	"github.com/josenarvaezp/curate/internal/faas"
	"github.com/josenarvaezp/curate/internal/logs"
	"github.com/josenarvaezp/curate/internal/objectstore"
	"github.com/josenarvaezp/curate/internal/queues"
)

// Session holds the configuration and clients shared by the read and write
// stages of a job. It is created once per process and passed explicitly.
type Session struct {
	Config *config.Config
	// clients
	ObjectStoreAPI objectstore.ObjectStoreAPI
	DownloaderAPI  objectstore.ManagerDownloaderAPI
	UploaderAPI    objectstore.ManagerUploaderAPI
	QueuesAPI      queues.QueuesAPI
	LogsAPI        logs.LogsAPI
	IdentityAPI    access.IdentityAPI
	FaasAPI        faas.FaasAPI
}

// NewSession creates a new Session with its required clients
func NewSession(conf *config.Config) (*Session, error) {
	var cfg *aws.Config
	var err error

	if conf.Local {
		// point clients to localstack
		cfg, err = config.InitLocalCfg(conf.LocalstackHost, conf.LocalstackPort, conf.Region)
		if err != nil {
			return nil, err
		}
	} else {
		// Load the configuration using the aws config file
		cfg, err = config.InitCfg(conf.Region)
		if err != nil {
			return nil, err
		}
	}

	if conf.Region == "" {
		conf.Region = cfg.Region
	}

	s3Client := s3.NewFromConfig(*cfg, func(o *s3.Options) {
		o.UsePathStyle = conf.Local
	})

	return &Session{
		Config:         conf,
		ObjectStoreAPI: s3Client,
		DownloaderAPI:  manager.NewDownloader(s3Client),
		UploaderAPI:    manager.NewUploader(s3Client),
		QueuesAPI:      sqs.NewFromConfig(*cfg),
		LogsAPI:        cloudwatchlogs.NewFromConfig(*cfg),
		IdentityAPI:    sts.NewFromConfig(*cfg),
		FaasAPI:        lambda.NewFromConfig(*cfg),
	}, nil
}

// concurrency returns the number of objects transferred at the same time
func (s *Session) concurrency() int {
	if s.Config.Concurrency <= 0 {
		return config.DefaultConcurrency
	}

	return s.Config.Concurrency
}
