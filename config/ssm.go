package config

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// HydrateFromSSM copies every parameter under parameterPath into the process environment,
// keyed by the last path element. Variables that are already set win over the parameter store.
func HydrateFromSSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	applied := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, fmt.Errorf("read parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			key := path.Base(aws.ToString(p.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			if _, set := os.LookupEnv(key); set {
				log.Debug().Str("key", key).Msg("environment overrides parameter store value")
				continue
			}
			if err := os.Setenv(key, aws.ToString(p.Value)); err != nil {
				return applied, fmt.Errorf("set %s: %w", key, err)
			}
			applied++
		}
	}
	return applied, nil
}
