package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backup-vault/notifications"
	"backup-vault/vault"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

type VaultAPI interface {
	List(ctx context.Context, f vault.Filter) (*backup.ListRecoveryPointsByBackupVaultOutput, error)
	DescribeBackup(ctx context.Context, recoveryPointARN string) (*backup.DescribeRecoveryPointOutput, error)
	DescribeRestoreJob(ctx context.Context, restoreJobID string) (*backup.DescribeRestoreJobOutput, error)
	RestoreEBSFromPoint(ctx context.Context, recoveryPointARN string, point *backup.DescribeRecoveryPointOutput, opts vault.EBSRestoreOptions) (*backup.StartRestoreJobOutput, error)
	RestoreEC2(ctx context.Context, recoveryPointARN string, opts vault.EC2RestoreOptions) (*backup.StartRestoreJobOutput, error)
	CopyBackup(ctx context.Context, recoveryPointARN string, opts vault.CopyOptions) (*backup.StartCopyJobOutput, error)
}

var _ VaultAPI = (*vault.Vault)(nil)

const (
	ActionList               = "list"
	ActionDescribe           = "describe"
	ActionRestoreEBS         = "restore_ebs"
	ActionRestoreEC2         = "restore_ec2"
	ActionCopy               = "copy"
	ActionDescribeRestoreJob = "describe_restore_job"
)

type Event struct {
	Action           string                  `json:"action"`
	ResourceType     string                  `json:"resource_type,omitempty"`
	CreatedBefore    string                  `json:"created_before,omitempty"`
	CreatedAfter     string                  `json:"created_after,omitempty"`
	NextToken        string                  `json:"next_token,omitempty"`
	MaxResults       int32                   `json:"max_results,omitempty"`
	RecoveryPointARN string                  `json:"recovery_point_arn,omitempty"`
	RestoreJobID     string                  `json:"restore_job_id,omitempty"`
	EBS              vault.EBSRestoreOptions `json:"ebs,omitempty"`
	EC2              vault.EC2RestoreOptions `json:"ec2,omitempty"`
	Copy             vault.CopyOptions       `json:"copy,omitempty"`
}

type Handler struct {
	Vault     VaultAPI
	VaultName string
	Region    string
	SNS       notifications.SNSClient
	TopicARN  string
}

// Handle dispatches one event to the vault and returns the AWS response as is.
func (h *Handler) Handle(ctx context.Context, event Event) (any, error) {
	action := strings.ToLower(strings.TrimSpace(event.Action))
	logger := log.With().Str("vault", h.VaultName).Str("action", action).Logger()
	logger.Info().Msg("Handling event")

	result, err := h.dispatch(ctx, action, event)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			logger.Error().Str("code", apiErr.ErrorCode()).Str("fault", apiErr.ErrorFault().String()).Err(err).Msg("AWS Backup request failed")
		} else {
			logger.Error().Err(err).Msg("Request failed")
		}
		return nil, err
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, action string, event Event) (any, error) {
	switch action {
	case ActionList:
		filter, err := filterFromEvent(event)
		if err != nil {
			return nil, err
		}
		return h.Vault.List(ctx, filter)

	case ActionDescribe:
		if err := requireARN(event); err != nil {
			return nil, err
		}
		return h.Vault.DescribeBackup(ctx, event.RecoveryPointARN)

	case ActionDescribeRestoreJob:
		if event.RestoreJobID == "" {
			return nil, fmt.Errorf("action %s needs restore_job_id", action)
		}
		return h.Vault.DescribeRestoreJob(ctx, event.RestoreJobID)

	case ActionRestoreEBS:
		if err := requireARN(event); err != nil {
			return nil, err
		}
		point, err := h.Vault.DescribeBackup(ctx, event.RecoveryPointARN)
		if err != nil {
			return nil, err
		}
		output, err := h.Vault.RestoreEBSFromPoint(ctx, event.RecoveryPointARN, point, event.EBS)
		if err != nil {
			return nil, err
		}
		h.notify(ctx, notifications.JobKindRestoreEBS, aws.ToString(output.RestoreJobId), event.RecoveryPointARN, point)
		return output, nil

	case ActionRestoreEC2:
		if err := requireARN(event); err != nil {
			return nil, err
		}
		output, err := h.Vault.RestoreEC2(ctx, event.RecoveryPointARN, event.EC2)
		if err != nil {
			return nil, err
		}
		h.notify(ctx, notifications.JobKindRestoreEC2, aws.ToString(output.RestoreJobId), event.RecoveryPointARN, nil)
		return output, nil

	case ActionCopy:
		if err := requireARN(event); err != nil {
			return nil, err
		}
		output, err := h.Vault.CopyBackup(ctx, event.RecoveryPointARN, event.Copy)
		if err != nil {
			return nil, err
		}
		h.notify(ctx, notifications.JobKindCopy, aws.ToString(output.CopyJobId), event.RecoveryPointARN, nil)
		return output, nil
	}

	return nil, fmt.Errorf("unknown action %q", event.Action)
}

func filterFromEvent(event Event) (vault.Filter, error) {
	filter := vault.Filter{
		ResourceType: vault.ResourceType(event.ResourceType),
		NextToken:    event.NextToken,
		MaxResults:   event.MaxResults,
	}

	var err error
	if filter.CreatedBefore, err = optionalDate(event.CreatedBefore); err != nil {
		return vault.Filter{}, fmt.Errorf("created_before: %w", err)
	}
	if filter.CreatedAfter, err = optionalDate(event.CreatedAfter); err != nil {
		return vault.Filter{}, fmt.Errorf("created_after: %w", err)
	}
	return filter, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return vault.ParseDate(s)
}

func requireARN(event Event) error {
	if event.RecoveryPointARN == "" {
		return fmt.Errorf("action %s needs recovery_point_arn", event.Action)
	}
	return nil
}

// notify publishes a job summary when a topic is configured. A failure here
// never fails the request; the job has already been started. The recovery
// point is described only when the caller has not done so already.
func (h *Handler) notify(ctx context.Context, kind notifications.JobKind, jobID, recoveryPointARN string, point *backup.DescribeRecoveryPointOutput) {
	if h.SNS == nil || h.TopicARN == "" {
		return
	}

	event := notifications.JobEvent{
		Kind:             kind,
		JobID:            jobID,
		Vault:            h.VaultName,
		Region:           h.Region,
		RecoveryPointARN: recoveryPointARN,
	}
	if point == nil {
		var err error
		if point, err = h.Vault.DescribeBackup(ctx, recoveryPointARN); err != nil {
			log.Warn().Err(err).Str("recovery_point", recoveryPointARN).Msg("Unable to read backup size for notification")
		}
	}
	if point != nil {
		event.SizeBytes = aws.ToInt64(point.BackupSizeInBytes)
	}

	if err := notifications.PublishJobEvents(ctx, h.SNS, h.TopicARN, []notifications.JobEvent{event}); err != nil {
		log.Warn().Err(err).Str("job", jobID).Msg("Job started but notification failed")
	}
}
