package main

import (
	"context"
	"fmt"

	"backup-vault/config"
	"backup-vault/logging"
	"backup-vault/vault"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

func newHandler(ctx context.Context, appConfig config.Configuration) (*Handler, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(appConfig.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	var opts []vault.Option
	if appConfig.AccountID != "" {
		opts = append(opts, vault.WithAccount(appConfig.AccountID))
	}
	if appConfig.RoleARN != "" {
		opts = append(opts, vault.WithRoleARN(appConfig.RoleARN))
	}

	v, err := vault.NewFromConfig(ctx, sdkConfig, appConfig.VaultName, opts...)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("vault", v.Name).
		Str("account", v.Account).
		Str("region", v.Region).
		Msg("Vault handler ready")

	return &Handler{
		Vault:     v,
		VaultName: v.Name,
		Region:    v.Region,
		SNS:       sns.NewFromConfig(sdkConfig),
		TopicARN:  appConfig.SNSTopicARN,
	}, nil
}

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load configuration")
	}
	logging.Init(appConfig.LogLevel, appConfig.LogFormat)

	handler, err := newHandler(context.Background(), appConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to open vault")
	}

	lambda.Start(handler.Handle)
}
