package params

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const (
	JobName       = "JOB_NAME"
	RawBucket     = "RAW_BUCKET"
	CuratedBucket = "CURATED_BUCKET"

	// optional parameters
	DestPartition = "DEST_PARTITION"
	ConfigFile    = "CONFIG_FILE"
)

var (
	// Required are the parameters every job run needs
	Required = []string{JobName, RawBucket, CuratedBucket}
	// Optional are the parameters a job run may receive
	Optional = []string{DestPartition, ConfigFile}

	ErrMissingParameter = errors.New("missing job parameter")
)

// Options holds the resolved job parameters by name
type Options map[string]string

// Get returns the value of the parameter or an empty string
func (o Options) Get(name string) string {
	return o[name]
}

// Resolve parses the invocation arguments the same way the orchestration layer
// passes them (--NAME value or --NAME=value). Arguments that are not requested
// are ignored. Every required name must be present and not empty.
func Resolve(args []string, required []string, optional []string) (Options, error) {
	fs := pflag.NewFlagSet("job", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)

	values := make(map[string]*string, len(required)+len(optional))
	for _, name := range append(append([]string{}, required...), optional...) {
		if _, ok := values[name]; ok {
			continue
		}
		values[name] = fs.String(name, "", fmt.Sprintf("job parameter %s", name))
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingParameter, err)
	}

	options := make(Options, len(values))
	for name, value := range values {
		if fs.Changed(name) {
			options[name] = *value
		}
	}

	if err := checkRequired(options, required); err != nil {
		return nil, err
	}

	return options, nil
}

// FromMap resolves the job parameters from a map, used when the job is
// invoked with an event payload instead of arguments
func FromMap(m map[string]string, required []string, optional []string) (Options, error) {
	options := make(Options)
	for _, name := range append(append([]string{}, required...), optional...) {
		if value, ok := m[name]; ok {
			options[name] = value
		}
	}

	if err := checkRequired(options, required); err != nil {
		return nil, err
	}

	return options, nil
}

func checkRequired(options Options, required []string) error {
	missing := []string{}
	for _, name := range required {
		if strings.TrimSpace(options[name]) == "" {
			missing = append(missing, "--"+name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: the following arguments are required: %s", ErrMissingParameter, strings.Join(missing, ", "))
	}

	return nil
}
