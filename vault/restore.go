package vault

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/aws-sdk-go-v2/service/backup/types"
	"github.com/rs/zerolog/log"
)

// RestoreEBS starts a job that rebuilds an EBS volume from the recovery point.
// The volume size and encryption settings are taken from the recovery point
// itself. Every call starts a new job; completion is not awaited.
func (v *Vault) RestoreEBS(ctx context.Context, recoveryPointARN string, opts EBSRestoreOptions) (*backup.StartRestoreJobOutput, error) {
	point, err := v.DescribeBackup(ctx, recoveryPointARN)
	if err != nil {
		return nil, err
	}
	return v.RestoreEBSFromPoint(ctx, recoveryPointARN, point, opts)
}

// RestoreEBSFromPoint is RestoreEBS for callers that already described the
// recovery point.
func (v *Vault) RestoreEBSFromPoint(ctx context.Context, recoveryPointARN string, point *backup.DescribeRecoveryPointOutput, opts EBSRestoreOptions) (*backup.StartRestoreJobOutput, error) {
	metadata := ebsMetadata(point, opts.withDefaults(v.Region))
	log.Debug().
		Str("vault", v.Name).
		Str("recovery_point", recoveryPointARN).
		Str("volume_size_gib", metadata["volumesize"]).
		Str("encrypted", metadata["encrypted"]).
		Msg("Starting EBS restore job")

	return v.startRestore(ctx, recoveryPointARN, metadata)
}

// RestoreEC2 starts a job that relaunches an EC2 instance from the recovery
// point into the given network.
func (v *Vault) RestoreEC2(ctx context.Context, recoveryPointARN string, opts EC2RestoreOptions) (*backup.StartRestoreJobOutput, error) {
	metadata := map[string]string{
		"instancetype": opts.InstanceType,
		"keyname":      opts.KeyName,
		"vpcid":        opts.VPCID,
		"subnetid":     opts.SubnetID,
	}
	log.Debug().
		Str("vault", v.Name).
		Str("recovery_point", recoveryPointARN).
		Str("instance_type", opts.InstanceType).
		Msg("Starting EC2 restore job")

	return v.startRestore(ctx, recoveryPointARN, metadata)
}

func (v *Vault) startRestore(ctx context.Context, recoveryPointARN string, metadata map[string]string) (*backup.StartRestoreJobOutput, error) {
	return v.client.StartRestoreJob(ctx, &backup.StartRestoreJobInput{
		RecoveryPointArn:                 aws.String(recoveryPointARN),
		Metadata:                         metadata,
		IamRoleArn:                       v.roleARN(),
		CopySourceTagsToRestoredResource: true,
	})
}

// roleARN is nil when no role is known so the request omits the field
// instead of carrying an empty ARN.
func (v *Vault) roleARN() *string {
	if v.RoleARN == "" {
		return nil
	}
	return aws.String(v.RoleARN)
}

// CopyBackup copies a recovery point into another vault, which may live in a
// different region or account.
func (v *Vault) CopyBackup(ctx context.Context, recoveryPointARN string, opts CopyOptions) (*backup.StartCopyJobOutput, error) {
	region := opts.DestinationRegion
	if region == "" {
		region = v.Region
	}
	account := opts.DestinationAccount
	if account == "" {
		account = v.Account
	}
	retention := opts.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}

	destination := VaultARN(region, account, opts.DestinationVault)
	log.Debug().
		Str("vault", v.Name).
		Str("recovery_point", recoveryPointARN).
		Str("destination", destination).
		Int64("retention_days", retention).
		Msg("Starting copy job")

	return v.client.StartCopyJob(ctx, &backup.StartCopyJobInput{
		RecoveryPointArn:          aws.String(recoveryPointARN),
		SourceBackupVaultName:     aws.String(v.Name),
		DestinationBackupVaultArn: aws.String(destination),
		IamRoleArn:                v.roleARN(),
		Lifecycle: &types.Lifecycle{
			DeleteAfterDays: aws.Int64(retention),
		},
	})
}
