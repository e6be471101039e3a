package services

import (
	"context"
	"errors"
	"fmt"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
)

// ErrCaptchaRejected is returned when an assessment fails or scores below the threshold
var ErrCaptchaRejected = errors.New("captcha rejected")

// CaptchaRequest carries the client token and request metadata for an assessment
type CaptchaRequest struct {
	Token     string
	Action    string
	UserIP    string
	UserAgent string
}

// Recaptcha verifies tokens with reCAPTCHA Enterprise
type Recaptcha struct {
	client   *recaptcha.Client
	project  string
	siteKey  string
	minScore float32
}

// NewRecaptcha creates the Enterprise client
func NewRecaptcha(ctx context.Context, projectID, siteKey string, minScore float64) (*Recaptcha, error) {
	client, err := recaptcha.NewClient(ctx, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reCAPTCHA client: %w", err)
	}
	return &Recaptcha{client: client, project: projectID, siteKey: siteKey, minScore: float32(minScore)}, nil
}

// Verify creates an assessment for req and rejects invalid tokens, action mismatches and low scores
func (r *Recaptcha) Verify(ctx context.Context, req CaptchaRequest) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrCaptchaRejected)
	}

	resp, err := r.client.CreateAssessment(ctx, &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", r.project),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         req.Token,
				SiteKey:       r.siteKey,
				UserIpAddress: req.UserIP,
				UserAgent:     req.UserAgent,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("reCAPTCHA assessment: %w", err)
	}

	props := resp.GetTokenProperties()
	if props == nil || !props.GetValid() {
		return fmt.Errorf("%w: invalid token (%s)", ErrCaptchaRejected, props.GetInvalidReason())
	}
	if req.Action != "" && props.GetAction() != req.Action {
		return fmt.Errorf("%w: action %q, expected %q", ErrCaptchaRejected, props.GetAction(), req.Action)
	}
	if score := resp.GetRiskAnalysis().GetScore(); score < r.minScore {
		logger.FromContext(ctx).Info("reCAPTCHA score below threshold",
			zap.Float32("score", score), zap.Float32("min_score", r.minScore))
		return fmt.Errorf("%w: score %.2f", ErrCaptchaRejected, score)
	}
	return nil
}

func (r *Recaptcha) Close() error {
	return r.client.Close()
}
