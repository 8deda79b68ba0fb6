// FILE: lixenwraith/params/ssm.go
package params

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"go.uber.org/zap"
)

// SSMOptions configures access to AWS SSM Parameter Store.
// Nothing is read from the process environment beyond what the AWS SDK's
// default credential chain does when no static credentials are given.
type SSMOptions struct {
	// Region of the parameter store; empty uses the SDK default resolution
	Region string

	// Endpoint overrides the service URL (local emulators, tests)
	Endpoint string

	// Static credentials; when AccessKeyID is empty the default chain is used
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Recursive fetches the whole hierarchy below the prefix
	Recursive bool

	// WithDecryption returns SecureString values in plain text
	WithDecryption bool

	// MaxAttempts bounds SDK retries; zero keeps the SDK default
	MaxAttempts int

	// Logger receives fetch diagnostics; nil disables logging
	Logger *zap.Logger
}

// DefaultSSMOptions returns options suited to hierarchical stores:
// recursive, decrypted reads.
func DefaultSSMOptions() SSMOptions {
	return SSMOptions{
		Recursive:      true,
		WithDecryption: true,
	}
}

// SSMFetcher fetches parameters with GetParametersByPath.
type SSMFetcher struct {
	client ssm.GetParametersByPathAPIClient
	opts   SSMOptions
	logger *zap.Logger
}

// NewSSMFetcher creates a fetcher backed by a new SSM client.
func NewSSMFetcher(ctx context.Context, opts SSMOptions) (*SSMFetcher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken),
		))
	}
	if opts.MaxAttempts > 0 {
		loadOpts = append(loadOpts, awsconfig.WithRetryMaxAttempts(opts.MaxAttempts))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return NewSSMFetcherFromClient(client, opts), nil
}

// NewSSMFetcherFromClient wraps an existing client.
func NewSSMFetcherFromClient(client ssm.GetParametersByPathAPIClient, opts SSMOptions) *SSMFetcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SSMFetcher{client: client, opts: opts, logger: logger}
}

// Fetch returns every parameter under prefix, following pagination.
func (f *SSMFetcher) Fetch(ctx context.Context, prefix string) ([]Parameter, error) {
	path := ssmPath(prefix)
	f.logger.Debug("fetching parameters", zap.String("path", path), zap.Bool("recursive", f.opts.Recursive))

	paginator := ssm.NewGetParametersByPathPaginator(f.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(f.opts.Recursive),
		WithDecryption: aws.Bool(f.opts.WithDecryption),
	})

	var params []Parameter
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			f.logger.Warn("parameter fetch failed", zap.String("path", path), zap.Int("pages", pages), zap.Error(err))
			return nil, fmt.Errorf("failed to fetch parameters under '%s': %w", path, err)
		}
		pages++
		for _, p := range page.Parameters {
			params = append(params, fromSSMParameter(p))
		}
	}

	f.logger.Debug("fetched parameters", zap.String("path", path), zap.Int("pages", pages), zap.Int("count", len(params)))
	return params, nil
}

// ssmPath strips the trailing separator SSM rejects, keeping the root "/".
func ssmPath(prefix string) string {
	if prefix == "" {
		return Separator
	}
	if trimmed := strings.TrimSuffix(prefix, Separator); trimmed != "" {
		return trimmed
	}
	return Separator
}

func fromSSMParameter(p types.Parameter) Parameter {
	out := Parameter{
		Name:    aws.ToString(p.Name),
		Value:   aws.ToString(p.Value),
		Type:    string(p.Type),
		Version: p.Version,
		ARN:     aws.ToString(p.ARN),
	}
	if p.LastModifiedDate != nil {
		out.LastModified = *p.LastModifiedDate
	}
	return out
}
