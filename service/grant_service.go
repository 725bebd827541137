// service/grant_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gimme-oss/gimme/audit"
	"github.com/gimme-oss/gimme/config"
	gimme_errors "github.com/gimme-oss/gimme/errors"
	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
	"github.com/gimme-oss/gimme/util"
	helper_util "github.com/gimme-oss/gimme/util/helper"
)

const (
	// grantDescription marks bindings created by this service so they can
	// be recognized in the policy later.
	grantDescription = "This is a temporary grant created by Gimme"

	// conditionalPolicyVersion is what the policy's version field is set to
	// before writing; conditions require schema version 3.
	conditionalPolicyVersion = 3

	// policyWriteAttempts bounds the re-fetch-and-reapply loop when a
	// concurrent writer changed the policy between our read and write.
	policyWriteAttempts = 3

	defaultPrincipalType = "user"
)

// IGrantService applies temporary access grants to project IAM policies.
type IGrantService interface {
	ApplyGrant(ctx context.Context, req model.GrantRequest, auth model.SessionAuth) (*model.GrantReceipt, error)
}

// PolicyStore is the slice of the IAM DAO the grant pipeline depends on.
type PolicyStore interface {
	GetPolicy(ctx context.Context, projectID string) (*model.Policy, error)
	SetPolicy(ctx context.Context, projectID string, policy *model.Policy) error
}

// GrantService runs the grant pipeline: resolve identity, authorize the
// domain, extract the project ID, fetch the policy, append the conditional
// binding, write the policy back.
type GrantService struct {
	policyStore     PolicyStore
	identityService IIdentityService
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	auditService    audit.Service
	allowedDomains  []string

	// Now supplies the pipeline's clock; expiry computation must never read
	// ambient time so it stays deterministic under test.
	Now func() time.Time
}

// NewGrantService creates a new instance of GrantService
func NewGrantService(
	policyStore PolicyStore,
	identityService IIdentityService,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	auditService audit.Service,
) *GrantService {
	service := &GrantService{
		policyStore:     policyStore,
		identityService: identityService,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
		allowedDomains:  config.GetStringSlice("google.allowedDomains"),
		Now:             time.Now,
	}

	// Set up event subscriptions
	eventBus.Subscribe("grant.applied", service.handleGrantApplied)

	return service
}

// ApplyGrant runs one grant request through the pipeline. Every rejection
// maps to exactly one sentinel from the errors package; nothing escapes as
// an unclassified fault.
func (s *GrantService) ApplyGrant(ctx context.Context, req model.GrantRequest, auth model.SessionAuth) (*model.GrantReceipt, error) {
	identity, err := s.identityService.Resolve(ctx, auth)
	if err != nil {
		return nil, err
	}

	if !util.ValidDomain(identity.Domain, s.allowedDomains) {
		logger.Warn("Grant request from a non-whitelisted domain",
			zap.String("domain", identity.Domain),
			zap.String("account", identity.Account))
		s.recordRejection(ctx, identity.Account, req, "domain not whitelisted")
		return nil, gimme_errors.ErrDomainNotAllowed
	}

	if err := s.validationUtil.ValidateGrantRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrInvalidGrantData, err)
	}

	project := util.ProjectFromField(req.Project)
	if project == "" {
		logger.Warn("Could not extract a project ID from the request",
			zap.String("field", req.Project),
			zap.String("account", identity.Account))
		s.recordRejection(ctx, identity.Account, req, "no project ID in request")
		return nil, gimme_errors.ErrProjectNotFound
	}

	var binding model.Binding
	var expiry string
	var lastErr error
	for attempt := 0; attempt < policyWriteAttempts; attempt++ {
		policy, err := s.policyStore.GetPolicy(ctx, project)
		if err != nil {
			s.recordRejection(ctx, identity.Account, req, err.Error())
			return nil, err
		}

		now := s.Now()
		binding = BuildConditionalBinding(req, identity.Account, now)
		expiry = grantExpiry(req, now)
		policy.Bindings = append(policy.Bindings, binding)
		policy.Version = conditionalPolicyVersion

		lastErr = s.policyStore.SetPolicy(ctx, project, policy)
		if lastErr == nil {
			break
		}
		if !errors.Is(lastErr, gimme_errors.ErrPolicyConflict) {
			s.recordRejection(ctx, identity.Account, req, lastErr.Error())
			return nil, lastErr
		}
		logger.Warn("Retrying grant after policy version conflict",
			zap.String("project", project),
			zap.Int("attempt", attempt+1))
	}
	if lastErr != nil {
		s.recordRejection(ctx, identity.Account, req, lastErr.Error())
		return nil, fmt.Errorf("%w: %v", gimme_errors.ErrPolicyWriteFailed, lastErr)
	}

	receipt := &model.GrantReceipt{
		Project:   project,
		Member:    binding.Members[0],
		Role:      binding.Role,
		Expiry:    expiry,
		GrantedBy: identity.Account,
	}

	logger.Info("Temporary grant applied",
		zap.String("project", receipt.Project),
		zap.String("member", receipt.Member),
		zap.String("role", receipt.Role),
		zap.String("expiry", receipt.Expiry),
		zap.String("grantedBy", receipt.GrantedBy))

	s.eventBus.Publish(ctx, "grant.applied", *receipt)

	return receipt, nil
}

// handleGrantApplied fans an applied grant out to the audit trail and the
// notification side concurrently.
func (s *GrantService) handleGrantApplied(ctx context.Context, event util.Event) error {
	receipt, ok := event.Payload.(model.GrantReceipt)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.auditService.LogGrant(ctx, audit.GrantLog{
			Timestamp: s.Now(),
			Requester: receipt.GrantedBy,
			Member:    receipt.Member,
			Project:   receipt.Project,
			Role:      receipt.Role,
			Expiry:    receipt.Expiry,
			Granted:   true,
		})
	})
	g.Go(func() error {
		return s.notificationSvc.NotifyGrantApplied(ctx, receipt)
	})
	return g.Wait()
}

// recordRejection writes a denied request to the audit trail. Best effort;
// the pipeline's own outcome is not affected by audit failures.
func (s *GrantService) recordRejection(ctx context.Context, requester string, req model.GrantRequest, detail string) {
	err := s.auditService.LogGrant(ctx, audit.GrantLog{
		Timestamp: s.Now(),
		Requester: requester,
		Project:   req.Project,
		Role:      req.Role,
		Granted:   false,
		Detail:    detail,
	})
	if err != nil {
		logger.Warn("Failed to record rejected grant", zap.Error(err))
	}
}

// BuildConditionalBinding constructs the time-bound binding for a request.
// Pure: the expiry is computed from the passed-in instant, so equal inputs
// always produce an identical binding.
func BuildConditionalBinding(req model.GrantRequest, requester string, now time.Time) model.Binding {
	principalType := req.PrincipalType
	if principalType == "" {
		principalType = defaultPrincipalType
	}

	expiry := grantExpiry(req, now)

	return model.Binding{
		Role:    req.Role,
		Members: []string{fmt.Sprintf("%s:%s@%s", principalType, req.Target, req.Domain)},
		Condition: &model.Condition{
			Expression:  fmt.Sprintf("request.time < timestamp(%q)", expiry),
			Title:       fmt.Sprintf("granted by %s", requester),
			Description: grantDescription,
		},
	}
}

// grantExpiry computes the grant's expiry instant, rendered in the format
// the condition expression embeds.
func grantExpiry(req model.GrantRequest, now time.Time) string {
	return helper_util.FormatExpiry(now.Add(time.Duration(req.Period) * time.Minute))
}
