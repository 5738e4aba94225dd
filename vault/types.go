package vault

import (
	"fmt"
	"time"
)

// ResourceType is the AWS resource type a recovery point was taken from.
type ResourceType string

const (
	ResourceTypeAll            ResourceType = "All"
	ResourceTypeAurora         ResourceType = "Aurora"
	ResourceTypeDocumentDB     ResourceType = "DocumentDB"
	ResourceTypeCloudFormation ResourceType = "CloudFormation"
	ResourceTypeDynamoDB       ResourceType = "DynamoDB"
	ResourceTypeEBS            ResourceType = "EBS"
	ResourceTypeEC2            ResourceType = "EC2"
	ResourceTypeEFS            ResourceType = "EFS"
	ResourceTypeFSx            ResourceType = "FSx"
	ResourceTypeNeptune        ResourceType = "Neptune"
	ResourceTypeRDS            ResourceType = "RDS"
	ResourceTypeRedshift       ResourceType = "Redshift"
	ResourceTypeS3             ResourceType = "S3"
	ResourceTypeTimestream     ResourceType = "Timestream"
	ResourceTypeVirtualMachine ResourceType = "VirtualMachine"
)

// EarliestCreatedAfter is used when a list filter has no lower bound.
var EarliestCreatedAfter = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

// Filter selects recovery points in a vault. NextToken and MaxResults are
// handed to the service as-is.
type Filter struct {
	ResourceType  ResourceType
	CreatedBefore time.Time
	CreatedAfter  time.Time
	NextToken     string
	MaxResults    int32
}

// EBSRestoreOptions tunes the volume created by RestoreEBS. Empty fields take
// the defaults below.
type EBSRestoreOptions struct {
	AvailabilityZone string `json:"availability_zone,omitempty"`
	IOPS             string `json:"iops,omitempty"`
	Throughput       string `json:"throughput,omitempty"`
	VolumeType       string `json:"volume_type,omitempty"`
	KMSKeyID         string `json:"kms_key_id,omitempty"`
}

const (
	defaultIOPS       = "3000"
	defaultThroughput = "125"
	defaultVolumeType = "gp3"
)

type EC2RestoreOptions struct {
	InstanceType string `json:"instance_type"`
	KeyName      string `json:"key_name"`
	VPCID        string `json:"vpc_id"`
	SubnetID     string `json:"subnet_id"`
}

// CopyOptions describes where CopyBackup sends a recovery point.
type CopyOptions struct {
	DestinationVault   string `json:"destination_vault"`
	DestinationRegion  string `json:"destination_region,omitempty"`
	DestinationAccount string `json:"destination_account,omitempty"`
	RetentionDays      int64  `json:"retention_days,omitempty"`
}

const defaultRetentionDays = 35

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts a calendar date (2024-01-01) or an RFC 3339 timestamp.
// Calendar dates are interpreted as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
}
