package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/hemantobora/bucket-guard/internal/models"
)

// CallerIdentity resolves the account behind the loaded credentials.
// The IAM alias lookup is best effort: many audit roles lack iam:ListAccountAliases.
func (p *Provider) CallerIdentity(ctx context.Context) (*models.AccountInfo, error) {
	out, err := p.STSClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, &models.ProviderError{
			Provider:  p.GetProviderType(),
			Operation: "get-caller-identity",
			Cause:     err,
		}
	}

	info := &models.AccountInfo{
		AccountID: aws.ToString(out.Account),
		ARN:       aws.ToString(out.Arn),
		Region:    p.region,
	}

	if p.IAMClient != nil {
		aliases, err := p.IAMClient.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
		if err == nil && len(aliases.AccountAliases) > 0 {
			info.Alias = aliases.AccountAliases[0]
		}
	}
	return info, nil
}
