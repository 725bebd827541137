// dao/iam_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/gimme-oss/gimme/config"
	gimme_errors "github.com/gimme-oss/gimme/errors"
	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
)

// requestedPolicyVersion is the policy schema version asked of the store on
// read. Version 3 is the first with conditional-binding support.
const requestedPolicyVersion = 3

// IAMPolicyDAO reads and writes project IAM policies through the Cloud
// Resource Manager API.
type IAMPolicyDAO struct {
	crm *cloudresourcemanager.Service
}

// NewIAMPolicyDAO builds a DAO backed by the Cloud Resource Manager API.
// Without explicit options it authenticates with the configured service
// account credentials, scoped to cloud-platform administration.
func NewIAMPolicyDAO(ctx context.Context, opts ...option.ClientOption) (*IAMPolicyDAO, error) {
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(config.GetString("google.credentialsFile")),
			option.WithScopes(cloudresourcemanager.CloudPlatformScope),
		}
	}
	crm, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudresourcemanager client: %w", err)
	}
	return &IAMPolicyDAO{crm: crm}, nil
}

// GetPolicy fetches the current IAM policy for a project at policy schema
// version 3.
func (dao *IAMPolicyDAO) GetPolicy(ctx context.Context, projectID string) (*model.Policy, error) {
	req := &cloudresourcemanager.GetIamPolicyRequest{
		Options: &cloudresourcemanager.GetPolicyOptions{
			RequestedPolicyVersion: requestedPolicyVersion,
		},
	}

	resp, err := dao.crm.Projects.GetIamPolicy(projectID, req).Context(ctx).Do()
	if err != nil {
		logger.Error("Failed to fetch IAM policy",
			zap.Error(err),
			zap.String("projectID", projectID))
		return nil, fmt.Errorf("%w: %s", gimme_errors.ErrPolicyUnavailable, upstreamMessage(err))
	}

	policy, err := policyFromCRM(resp)
	if err != nil {
		logger.Error("Policy store returned a malformed policy",
			zap.Error(err),
			zap.String("projectID", projectID))
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrPolicyUnavailable, err)
	}

	logger.Debug("Fetched IAM policy",
		zap.String("projectID", projectID),
		zap.Int64("version", policy.Version),
		zap.Int("bindings", len(policy.Bindings)))
	return policy, nil
}

// SetPolicy replaces the project's IAM policy with the given document. A
// version conflict (another writer got there first) is reported as
// ErrPolicyConflict so the caller can re-fetch and re-apply; any other
// failure carries the store's own error message.
func (dao *IAMPolicyDAO) SetPolicy(ctx context.Context, projectID string, policy *model.Policy) error {
	req := &cloudresourcemanager.SetIamPolicyRequest{
		Policy: policyToCRM(policy),
	}

	if _, err := dao.crm.Projects.SetIamPolicy(projectID, req).Context(ctx).Do(); err != nil {
		if isConflict(err) {
			logger.Warn("IAM policy version conflict on write",
				zap.String("projectID", projectID),
				zap.String("etag", policy.Etag))
			return fmt.Errorf("%w: %s", gimme_errors.ErrPolicyConflict, upstreamMessage(err))
		}
		logger.Error("Failed to write IAM policy",
			zap.Error(err),
			zap.String("projectID", projectID))
		return fmt.Errorf("%w: %s", gimme_errors.ErrPolicyWriteFailed, upstreamMessage(err))
	}

	logger.Info("IAM policy written",
		zap.String("projectID", projectID),
		zap.Int64("version", policy.Version),
		zap.Int("bindings", len(policy.Bindings)))
	return nil
}

// policyFromCRM converts the wire policy into the typed model, validating
// its shape on the way in.
func policyFromCRM(p *cloudresourcemanager.Policy) (*model.Policy, error) {
	if p == nil {
		return nil, fmt.Errorf("policy store returned an empty document")
	}

	policy := &model.Policy{
		Version:  p.Version,
		Etag:     p.Etag,
		Bindings: make([]model.Binding, 0, len(p.Bindings)),
	}
	for i, b := range p.Bindings {
		if b == nil || b.Role == "" {
			return nil, fmt.Errorf("binding %d has no role", i)
		}
		binding := model.Binding{
			Role:    b.Role,
			Members: append([]string(nil), b.Members...),
		}
		if b.Condition != nil {
			binding.Condition = &model.Condition{
				Expression:  b.Condition.Expression,
				Title:       b.Condition.Title,
				Description: b.Condition.Description,
			}
		}
		policy.Bindings = append(policy.Bindings, binding)
	}
	return policy, nil
}

// policyToCRM converts the typed model back into the wire policy. The etag
// from the fetched document rides along so the store can reject the write
// if the policy moved underneath us.
func policyToCRM(p *model.Policy) *cloudresourcemanager.Policy {
	policy := &cloudresourcemanager.Policy{
		Version:  p.Version,
		Etag:     p.Etag,
		Bindings: make([]*cloudresourcemanager.Binding, 0, len(p.Bindings)),
	}
	for _, b := range p.Bindings {
		binding := &cloudresourcemanager.Binding{
			Role:    b.Role,
			Members: append([]string(nil), b.Members...),
		}
		if b.Condition != nil {
			binding.Condition = &cloudresourcemanager.Expr{
				Expression:  b.Condition.Expression,
				Title:       b.Condition.Title,
				Description: b.Condition.Description,
			}
		}
		policy.Bindings = append(policy.Bindings, binding)
	}
	return policy
}

// upstreamMessage pulls the human-readable message out of a store error.
func upstreamMessage(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}

// isConflict reports whether the store rejected the write because the
// policy's etag no longer matches.
func isConflict(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusConflict
}
