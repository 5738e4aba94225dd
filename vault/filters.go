package vault

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
)

var now = time.Now

// listInput turns a Filter into the service request. Values are forwarded
// verbatim; only the open ends of the window and "All" are handled here.
func (v *Vault) listInput(f Filter) *backup.ListRecoveryPointsByBackupVaultInput {
	before := f.CreatedBefore
	if before.IsZero() {
		before = now().UTC()
	}
	after := f.CreatedAfter
	if after.IsZero() {
		after = EarliestCreatedAfter
	}

	input := &backup.ListRecoveryPointsByBackupVaultInput{
		BackupVaultName: aws.String(v.Name),
		ByCreatedBefore: aws.Time(before),
		ByCreatedAfter:  aws.Time(after),
	}
	if f.ResourceType != "" && f.ResourceType != ResourceTypeAll {
		input.ByResourceType = aws.String(string(f.ResourceType))
	}
	if f.NextToken != "" {
		input.NextToken = aws.String(f.NextToken)
	}
	if f.MaxResults > 0 {
		input.MaxResults = aws.Int32(f.MaxResults)
	}
	return input
}

// ebsMetadata builds the restore metadata for an EBS recovery point.
func ebsMetadata(point *backup.DescribeRecoveryPointOutput, opts EBSRestoreOptions) map[string]string {
	encrypted := "false"
	if point.IsEncrypted {
		encrypted = "true"
	}

	kmsKey := opts.KMSKeyID
	if point.IsEncrypted && kmsKey == "" {
		kmsKey = aws.ToString(point.EncryptionKeyArn)
	}

	metadata := map[string]string{
		"availabilityzone": opts.AvailabilityZone,
		"encrypted":        encrypted,
		"iops":             opts.IOPS,
		"throughput":       opts.Throughput,
		"volumesize":       volumeSizeGiB(point.BackupSizeInBytes),
		"volumetype":       opts.VolumeType,
	}
	if kmsKey != "" {
		metadata["kmskeyid"] = kmsKey
	}
	return metadata
}

func volumeSizeGiB(bytes *int64) string {
	return strconv.FormatInt(aws.ToInt64(bytes)/(1<<30), 10)
}

func (o EBSRestoreOptions) withDefaults(region string) EBSRestoreOptions {
	if o.AvailabilityZone == "" {
		o.AvailabilityZone = region + "a"
	}
	if o.IOPS == "" {
		o.IOPS = defaultIOPS
	}
	if o.Throughput == "" {
		o.Throughput = defaultThroughput
	}
	if o.VolumeType == "" {
		o.VolumeType = defaultVolumeType
	}
	return o
}
