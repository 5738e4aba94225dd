package vault

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "calendar date",
			input: "2024-01-01",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2024-01-01T10:00:00+02:00",
			want:  time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "01/02/2024",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.want.Equal(got))
			}
		})
	}
}

func TestVolumeSizeGiB(t *testing.T) {
	assert.Equal(t, "0", volumeSizeGiB(nil))
	assert.Equal(t, "0", volumeSizeGiB(aws.Int64(1<<29)))
	assert.Equal(t, "1", volumeSizeGiB(aws.Int64(1<<30)))
	assert.Equal(t, "499", volumeSizeGiB(aws.Int64(500<<30-1)))
}

type mockSTSClient struct {
	output *sts.GetCallerIdentityOutput
	err    error
}

func (m *mockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.output, m.err
}

func TestCallerAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		client  STSClient
		want    string
		wantErr error
	}{
		{
			name:   "returns account",
			client: &mockSTSClient{output: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}},
			want:   "123456789012",
		},
		{
			name:    "empty account",
			client:  &mockSTSClient{output: &sts.GetCallerIdentityOutput{}},
			wantErr: ErrEmptyAccount,
		},
		{
			name:    "no credentials",
			client:  &mockSTSClient{err: fmt.Errorf("no valid credentials found")},
			wantErr: fmt.Errorf("no valid credentials found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CallerAccount(ctx, tt.client)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

type countingSTSClient struct {
	mockSTSClient
	calls int
}

func (c *countingSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	c.calls++
	return c.mockSTSClient.GetCallerIdentity(ctx, params, optFns...)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		cfg         aws.Config
		opts        []Option
		sts         *countingSTSClient
		wantAccount string
		wantRole    string
		wantRegion  string
		wantCalls   int
		wantErr     bool
	}{
		{
			name:        "resolves account through STS",
			cfg:         aws.Config{Region: "eu-west-1"},
			sts:         &countingSTSClient{mockSTSClient: mockSTSClient{output: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}}},
			wantAccount: "123456789012",
			wantRole:    "arn:aws:iam::123456789012:role/service-role/AWSBackupDefaultServiceRole",
			wantRegion:  "eu-west-1",
			wantCalls:   1,
		},
		{
			name:        "keeps explicit role after STS lookup",
			cfg:         aws.Config{},
			opts:        []Option{WithRoleARN("arn:aws:iam::123456789012:role/restore")},
			sts:         &countingSTSClient{mockSTSClient: mockSTSClient{output: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}}},
			wantAccount: "123456789012",
			wantRole:    "arn:aws:iam::123456789012:role/restore",
			wantRegion:  DefaultRegion,
			wantCalls:   1,
		},
		{
			name:        "configured account skips STS",
			cfg:         aws.Config{Region: "us-west-2"},
			opts:        []Option{WithAccount("210987654321")},
			sts:         &countingSTSClient{},
			wantAccount: "210987654321",
			wantRole:    "arn:aws:iam::210987654321:role/service-role/AWSBackupDefaultServiceRole",
			wantRegion:  "us-west-2",
			wantCalls:   0,
		},
		{
			name:      "STS failure",
			cfg:       aws.Config{Region: "us-east-1"},
			sts:       &countingSTSClient{mockSTSClient: mockSTSClient{err: fmt.Errorf("no valid credentials found")}},
			wantCalls: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSTSClient = func(aws.Config) STSClient { return tt.sts }
			t.Cleanup(func() {
				newSTSClient = func(cfg aws.Config) STSClient { return sts.NewFromConfig(cfg) }
			})

			v, err := NewFromConfig(ctx, tt.cfg, "prod-vault", tt.opts...)
			assert.Equal(t, tt.wantCalls, tt.sts.calls)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, v)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "prod-vault", v.Name)
			assert.Equal(t, tt.wantAccount, v.Account)
			assert.Equal(t, tt.wantRole, v.RoleARN)
			assert.Equal(t, tt.wantRegion, v.Region)
		})
	}
}
