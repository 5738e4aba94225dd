package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog/log"
)

type BackupClient interface {
	ListRecoveryPointsByBackupVault(ctx context.Context, params *backup.ListRecoveryPointsByBackupVaultInput, optFns ...func(*backup.Options)) (*backup.ListRecoveryPointsByBackupVaultOutput, error)
	DescribeRecoveryPoint(ctx context.Context, params *backup.DescribeRecoveryPointInput, optFns ...func(*backup.Options)) (*backup.DescribeRecoveryPointOutput, error)
	StartRestoreJob(ctx context.Context, params *backup.StartRestoreJobInput, optFns ...func(*backup.Options)) (*backup.StartRestoreJobOutput, error)
	DescribeRestoreJob(ctx context.Context, params *backup.DescribeRestoreJobInput, optFns ...func(*backup.Options)) (*backup.DescribeRestoreJobOutput, error)
	StartCopyJob(ctx context.Context, params *backup.StartCopyJobInput, optFns ...func(*backup.Options)) (*backup.StartCopyJobOutput, error)
}

var _ BackupClient = (*backup.Client)(nil)

const DefaultRegion = "us-east-1"

var newSTSClient = func(cfg aws.Config) STSClient {
	return sts.NewFromConfig(cfg)
}

// Vault is a handle on a single AWS Backup vault. It holds no state besides
// its identity, so every call is a fresh round trip to the service.
type Vault struct {
	Name    string
	Account string
	Region  string
	RoleARN string

	client BackupClient
}

type Option func(*Vault)

func WithAccount(account string) Option {
	return func(v *Vault) { v.Account = account }
}

func WithRegion(region string) Option {
	return func(v *Vault) { v.Region = region }
}

// WithRoleARN overrides the IAM role AWS Backup assumes for restore and copy
// jobs.
func WithRoleARN(arn string) Option {
	return func(v *Vault) { v.RoleARN = arn }
}

// New wraps an existing client. Without WithAccount or WithRoleARN the vault
// knows no IAM role and jobs are started without one; NewFromConfig resolves
// the account through STS instead.
func New(client BackupClient, name string, opts ...Option) *Vault {
	v := &Vault{
		Name:   name,
		Region: DefaultRegion,
		client: client,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.RoleARN == "" && v.Account != "" {
		v.RoleARN = DefaultRoleARN(v.Account)
	}
	return v
}

// NewFromConfig builds a Vault on top of an SDK config. When no account is
// given it is looked up with STS.
func NewFromConfig(ctx context.Context, cfg aws.Config, name string, opts ...Option) (*Vault, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	v := New(backup.NewFromConfig(cfg), name, append([]Option{WithRegion(cfg.Region)}, opts...)...)
	if v.Account == "" {
		account, err := CallerAccount(ctx, newSTSClient(cfg))
		if err != nil {
			return nil, fmt.Errorf("unable to resolve account for vault %s: %w", name, err)
		}
		v.Account = account
		if v.RoleARN == "" {
			v.RoleARN = DefaultRoleARN(account)
		}
	}
	return v, nil
}

// DefaultRoleARN is the service role AWS Backup creates on first use.
func DefaultRoleARN(account string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/service-role/AWSBackupDefaultServiceRole", account)
}

// VaultARN returns the vault ARN in the given region and account.
func VaultARN(region, account, name string) string {
	return fmt.Sprintf("arn:aws:backup:%s:%s:backup-vault:%s", region, account, name)
}

// ListBackups lists recovery points of the given resource type created inside
// the window. A zero bound leaves that side of the window open.
func (v *Vault) ListBackups(ctx context.Context, resourceType ResourceType, createdBefore, createdAfter time.Time) (*backup.ListRecoveryPointsByBackupVaultOutput, error) {
	return v.List(ctx, Filter{
		ResourceType:  resourceType,
		CreatedBefore: createdBefore,
		CreatedAfter:  createdAfter,
	})
}

// List issues a single ListRecoveryPointsByBackupVault call. Paging is left to
// the caller through Filter.NextToken.
func (v *Vault) List(ctx context.Context, f Filter) (*backup.ListRecoveryPointsByBackupVaultOutput, error) {
	input := v.listInput(f)
	log.Debug().
		Str("vault", v.Name).
		Str("resource_type", aws.ToString(input.ByResourceType)).
		Time("created_before", aws.ToTime(input.ByCreatedBefore)).
		Time("created_after", aws.ToTime(input.ByCreatedAfter)).
		Msg("Listing recovery points")
	return v.client.ListRecoveryPointsByBackupVault(ctx, input)
}

func (v *Vault) DescribeBackup(ctx context.Context, recoveryPointARN string) (*backup.DescribeRecoveryPointOutput, error) {
	return v.client.DescribeRecoveryPoint(ctx, &backup.DescribeRecoveryPointInput{
		BackupVaultName:  aws.String(v.Name),
		RecoveryPointArn: aws.String(recoveryPointARN),
	})
}

func (v *Vault) DescribeRestoreJob(ctx context.Context, restoreJobID string) (*backup.DescribeRestoreJobOutput, error) {
	return v.client.DescribeRestoreJob(ctx, &backup.DescribeRestoreJobInput{
		RestoreJobId: aws.String(restoreJobID),
	})
}
