// Package commands implements the raddecode CLI commands.
package commands

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/openradius/raddecode/internal/config"
	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/dictionary/builtin"
	"github.com/openradius/raddecode/pkg/radius/dictionary/dictsource"
	"github.com/openradius/raddecode/pkg/radius/dictionary/loader"
)

// loadConfigForAdHocCommand loads the configuration for one-shot commands
// (decode, dictionary) that can run without a saved config file at all. When
// no explicit path is given and no default config exists, config.Load's
// "radius.secret required" validation would otherwise block commands that
// supply their own secret via a flag (or don't need one, like "dictionary"
// inspection) — those still get every other default, just not a mandatory
// secret.
func loadConfigForAdHocCommand(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path != "" || config.DefaultConfigExists() {
		return nil, err
	}
	cfg = &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg, nil
}

// BuildDictionary resolves cfg.Dictionary into a ready-to-use Dictionary,
// per the dictionary.source setting: "builtin" needs nothing further, "file"
// loads a FreeRADIUS-style text file from disk, "s3" fetches one from object
// storage.
func BuildDictionary(ctx context.Context, cfg *config.DictionaryConfig) (dictionary.Dictionary, error) {
	switch cfg.Source {
	case "builtin", "":
		logger.Info("dictionary loaded", logger.DictSource("builtin"))
		return builtin.New(), nil

	case "file":
		dict, err := loader.Load(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary file %q: %w", cfg.Path, err)
		}
		logger.Info("dictionary loaded", logger.DictSource("file"), logger.DictPath(cfg.Path))
		return dict, nil

	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		src, err := dictsource.New(dictsource.Config{
			Client: s3.NewFromConfig(awsCfg),
			Bucket: cfg.S3.Bucket,
			Key:    cfg.S3.Key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 dictionary source: %w", err)
		}
		dict, err := src.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch dictionary from s3://%s/%s: %w", cfg.S3.Bucket, cfg.S3.Key, err)
		}
		logger.Info("dictionary loaded", logger.DictSource("s3"), logger.DictPath(cfg.S3.Bucket+"/"+cfg.S3.Key))
		return dict, nil

	default:
		return nil, fmt.Errorf("unknown dictionary source: %q", cfg.Source)
	}
}
