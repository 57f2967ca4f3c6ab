package partition

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	// DefaultScheme is the scheme used for object storage paths
	DefaultScheme = "s3"

	yearKey  = "year"
	monthKey = "month"
	dayKey   = "day"

	wildcard = "*"
)

var (
	ErrInvalidPartition = errors.New("invalid partition")
	ErrInvalidLocation  = errors.New("invalid location")
)

// Partition represents a year/month/day partition of a bucket
type Partition struct {
	Year  string `yaml:"year"`
	Month string `yaml:"month"`
	Day   string `yaml:"day"`
}

var (
	// All matches every year/month/day partition
	All = Partition{Year: wildcard, Month: wildcard, Day: wildcard}

	// DefaultDestination is the partition the curated data is written to
	// when no other partition is supplied
	DefaultDestination = Partition{Year: "25", Month: "11", Day: "25"}
)

// String returns the partition as path segments, e.g. year=25/month=11/day=25
func (p Partition) String() string {
	return fmt.Sprintf("%s=%s/%s=%s/%s=%s", yearKey, p.Year, monthKey, p.Month, dayKey, p.Day)
}

// IsZero reports whether no partition value is set
func (p Partition) IsZero() bool {
	return p == Partition{}
}

// Validate checks that every value is set and can be used as a path segment
func (p Partition) Validate() error {
	for key, value := range map[string]string{yearKey: p.Year, monthKey: p.Month, dayKey: p.Day} {
		if value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidPartition, key)
		}
		if strings.ContainsAny(value, "/=") {
			return fmt.Errorf("%w: %s=%s", ErrInvalidPartition, key, value)
		}
	}

	return nil
}

// Parse reads a partition written as year=YY/month=MM/day=DD. A trailing
// slash is accepted.
func Parse(s string) (Partition, error) {
	segments := strings.Split(strings.Trim(s, "/"), "/")
	if len(segments) != 3 {
		return Partition{}, fmt.Errorf("%w: %q", ErrInvalidPartition, s)
	}

	values := make([]string, len(segments))
	for i, key := range []string{yearKey, monthKey, dayKey} {
		k, v, ok := strings.Cut(segments[i], "=")
		if !ok || k != key {
			return Partition{}, fmt.Errorf("%w: expected %s=<value> in %q", ErrInvalidPartition, key, s)
		}
		values[i] = v
	}

	p := Partition{Year: values[0], Month: values[1], Day: values[2]}
	if err := p.Validate(); err != nil {
		return Partition{}, err
	}

	return p, nil
}

// SourcePath returns the path matching every partition of the bucket
func SourcePath(scheme, bucket string) string {
	return fmt.Sprintf("%s://%s/%s/", scheme, bucket, All)
}

// DestinationPath returns the path of a single partition of the bucket
func DestinationPath(scheme, bucket string, p Partition) string {
	return fmt.Sprintf("%s://%s/%s/", scheme, bucket, p)
}

// Location is a parsed object storage path
type Location struct {
	Scheme string
	Bucket string
	// Prefix has no leading slash and ends with a slash unless empty
	Prefix string
}

// ParseLocation parses paths such as s3://bucket/year=*/month=*/day=*/
func ParseLocation(uri string) (Location, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return Location{}, fmt.Errorf("%w: missing scheme in %q", ErrInvalidLocation, uri)
	}

	switch scheme {
	case "s3", "s3a", "s3n":
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}

	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: missing bucket in %q", ErrInvalidLocation, uri)
	}

	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return Location{
		Scheme: scheme,
		Bucket: bucket,
		Prefix: prefix,
	}, nil
}

// String returns the location as a path
func (l Location) String() string {
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Prefix)
}

// ListPrefix returns the literal part of the prefix before the first
// wildcard. Listing objects with it returns a superset of the matches.
func (l Location) ListPrefix() string {
	i := strings.IndexAny(l.Prefix, "*?[\\")
	if i < 0 {
		return l.Prefix
	}

	return l.Prefix[:i]
}

// Match reports whether the key is a data file under the location. The
// leading segments of the key must match the prefix segments, and the
// remaining segments must name a file that is neither hidden nor a
// directory marker.
func (l Location) Match(key string) bool {
	if key == "" || strings.HasSuffix(key, "/") {
		return false
	}

	patterns := segments(l.Prefix)
	keySegments := strings.Split(key, "/")
	if len(keySegments) <= len(patterns) {
		return false
	}

	for i, pattern := range patterns {
		matched, err := path.Match(pattern, keySegments[i])
		if err != nil || !matched {
			return false
		}
	}

	// hidden files and folders below the location are skipped
	for _, segment := range keySegments[len(patterns):] {
		if segment == "" || strings.HasPrefix(segment, "_") || strings.HasPrefix(segment, ".") {
			return false
		}
	}

	return true
}

func segments(prefix string) []string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}
