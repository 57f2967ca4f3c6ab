package job

import (
	"context"
	"io"

	"github.com/josenarvaezp/curate/internal/params"
	"github.com/josenarvaezp/curate/internal/partition"
)

// Execute runs the column drop job for the resolved options: the run is
// initialised, the transformation executed and the run committed on success
func Execute(ctx context.Context, session *Session, options params.Options, out io.Writer) error {
	destination := session.Config.DestinationPartition
	if value := options.Get(params.DestPartition); value != "" {
		var err error
		destination, err = partition.Parse(value)
		if err != nil {
			return err
		}
	}

	job := Init(session, options.Get(params.JobName), options)

	columnDrop := &ColumnDropJob{
		Session:       session,
		RawBucket:     options.Get(params.RawBucket),
		CuratedBucket: options.Get(params.CuratedBucket),
		Destination:   destination,
		Out:           out,
	}

	summary, err := columnDrop.Run(ctx, job.Logger())
	if err != nil {
		job.Fail(ctx, err)
		return err
	}

	return job.Commit(ctx, summary)
}
