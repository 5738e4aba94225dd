package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"VAULT_NAME", "AWS_ACCOUNT_ID", "AWS_REGION", "BACKUP_ROLE_ARN", "SNS_TOPIC_ARN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Configuration
		wantErr error
	}{
		{
			name: "applies defaults",
			env:  map[string]string{"VAULT_NAME": "prod-vault"},
			want: Configuration{
				VaultName: "prod-vault",
				Region:    "us-east-1",
				LogLevel:  "info",
				LogFormat: "json",
			},
		},
		{
			name: "reads every variable",
			env: map[string]string{
				"VAULT_NAME":      " prod-vault ",
				"AWS_ACCOUNT_ID":  "123456789012",
				"AWS_REGION":      "eu-west-1",
				"BACKUP_ROLE_ARN": "arn:aws:iam::123456789012:role/restore",
				"SNS_TOPIC_ARN":   "arn:aws:sns:eu-west-1:123456789012:restores",
				"LOG_LEVEL":       "DEBUG",
				"LOG_FORMAT":      "Console",
			},
			want: Configuration{
				VaultName:   "prod-vault",
				AccountID:   "123456789012",
				Region:      "eu-west-1",
				RoleARN:     "arn:aws:iam::123456789012:role/restore",
				SNSTopicARN: "arn:aws:sns:eu-west-1:123456789012:restores",
				LogLevel:    "debug",
				LogFormat:   "console",
			},
		},
		{
			name:    "vault name is required",
			env:     map[string]string{},
			wantErr: ErrMissingVaultName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
