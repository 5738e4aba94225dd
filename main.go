package main

import (
	"context"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/account"
	accountTypes "github.com/aws/aws-sdk-go-v2/service/account/types"
	"github.com/aws/jsii-runtime-go"
	"github.com/rs/zerolog/log"

	"backup-vault/logging"
	"backup-vault/pkg/backup_vault"
)

func contextString(app awscdk.App, key string) string {
	if value, ok := app.Node().TryGetContext(jsii.String(key)).(string); ok {
		return value
	}
	return ""
}

func main() {
	logging.Init("info", "console")

	ctx := context.TODO()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	app := awscdk.NewApp(&awscdk.AppProps{})

	vaultName := contextString(app, "vault_name")
	if vaultName == "" {
		log.Fatal().Msg("unable to get vault_name from context")
	}
	region := contextString(app, "region")
	if region == "" {
		region = cfg.Region
	}

	// The vault's region has to be enabled for the account.
	accountClient := account.NewFromConfig(cfg)
	availableRegions, err := accountClient.ListRegions(ctx, &account.ListRegionsInput{
		RegionOptStatusContains: []accountTypes.RegionOptStatus{
			accountTypes.RegionOptStatusEnabled,
			accountTypes.RegionOptStatusEnabledByDefault,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unable to list regions")
	}
	regions := []string{}
	for _, r := range availableRegions.Regions {
		regions = append(regions, *r.RegionName)
	}
	if !slices.Contains(regions, region) {
		log.Fatal().Str("region", region).Strs("enabled", regions).Msg("region is not enabled for this account")
	}

	backup_vault.NewBackupVaultStack(app, "BackupVaultStack", &backup_vault.BackupVaultStackProps{
		StackProps: awscdk.StackProps{
			Env: &awscdk.Environment{
				Region: jsii.String(region),
			},
		},
		VaultName:         jsii.String(vaultName),
		RoleArn:           jsii.String(contextString(app, "role_arn")),
		NotificationEmail: jsii.String(contextString(app, "notification_email")),
		LogLevel:          jsii.String(contextString(app, "log_level")),
	})

	app.Synth(nil)
}
