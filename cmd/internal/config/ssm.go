package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/labstack/gommon/log"
)

const (
	DefaultSSMPrefix = "/cloudnotes/prod/"
	defaultSSMRegion = "us-east-2"
)

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(getEnv("SSM_REGION", defaultSSMRegion)))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	prefix := getEnv("SSM_PREFIX", DefaultSSMPrefix)
	count, err := ExportParameters(ctx, ssm.NewFromConfig(cfg), prefix)
	if err != nil {
		return err
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}

// ExportParameters sets one environment variable per parameter found under
// prefix, named after the parameter with the prefix stripped. It walks every
// result page and returns how many variables it set.
func ExportParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range page.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if key == "" {
				continue
			}

			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}
	return count, nil
}
