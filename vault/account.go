package vault

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var ErrEmptyAccount = errors.New("caller identity has no account")

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CallerAccount returns the account the current credentials belong to. It
// doubles as a check that usable credentials are configured at all.
func CallerAccount(ctx context.Context, client STSClient) (string, error) {
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	account := aws.ToString(identity.Account)
	if account == "" {
		return "", ErrEmptyAccount
	}
	return account, nil
}
