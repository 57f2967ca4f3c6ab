package job

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/josenarvaezp/curate/internal/partition"
)

// ColumnDropJob reads the raw JSON partitions of a bucket, drops a column and
// writes the result as parquet to a single curated partition
type ColumnDropJob struct {
	Session       *Session
	RawBucket     string
	CuratedBucket string
	Destination   partition.Partition
	// Out receives the source and destination paths
	Out io.Writer
}

// SourcePath returns the path matching every raw partition
func (c *ColumnDropJob) SourcePath() string {
	return partition.SourcePath(c.Session.Config.Scheme, c.RawBucket)
}

// DestinationPath returns the path of the curated partition
func (c *ColumnDropJob) DestinationPath() string {
	return partition.DestinationPath(c.Session.Config.Scheme, c.CuratedBucket, c.Destination)
}

// Run executes the transformation
func (c *ColumnDropJob) Run(ctx context.Context, logger *log.Entry) (Summary, error) {
	src := c.SourcePath()
	dst := c.DestinationPath()

	fmt.Fprintf(c.Out, "Reading from: %s\n", src)
	fmt.Fprintf(c.Out, "Writing to: %s\n", dst)

	srcLocation, err := partition.ParseLocation(src)
	if err != nil {
		return Summary{}, err
	}
	dstLocation, err := partition.ParseLocation(dst)
	if err != nil {
		return Summary{}, err
	}

	ds, objectsRead, err := ReadJSON(ctx, c.Session, srcLocation)
	if err != nil {
		return Summary{}, err
	}
	logger.WithFields(log.Fields{
		"Objects": objectsRead,
		"Records": ds.Len(),
		"Columns": len(ds.Schema().Fields),
	}).Info("read source")

	column := c.Session.Config.DropColumn
	if !ds.Has(column) {
		logger.WithField("Column", column).Warn("column to drop is not present")
	}
	if c.Session.Config.StrictDrop {
		ds, err = ds.DropStrict(column)
		if err != nil {
			return Summary{}, err
		}
	} else {
		ds = ds.Drop(column)
	}

	result, err := WriteParquet(ctx, c.Session, ds, dstLocation)
	if err != nil {
		return Summary{}, err
	}
	logger.WithFields(log.Fields{
		"Files":    len(result.Files),
		"Replaced": result.Replaced,
	}).Info("wrote destination")

	return Summary{
		Source:      src,
		Destination: dst,
		ObjectsRead: objectsRead,
		Records:     result.Records,
		Replaced:    result.Replaced,
		Files:       result.Files,
	}, nil
}
