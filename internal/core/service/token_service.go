package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
	"github.com/fitpass/gym-system/internal/core/token"
)

// TokenService issues dynamic member tokens and checkpoint signage codes.
// Issuance is side-effect free: nothing is written to storage.
type TokenService struct {
	codec       *token.Codec
	checkpoints *token.CheckpointCodec
	members     ports.MemberRepository
	log         zerolog.Logger
}

func NewTokenService(codec *token.Codec, checkpoints *token.CheckpointCodec, members ports.MemberRepository, log zerolog.Logger) *TokenService {
	return &TokenService{codec: codec, checkpoints: checkpoints, members: members, log: log}
}

// IssueMemberToken returns a fresh dynamic token for the caller (or, for
// staff roles, any existing member).
func (s *TokenService) IssueMemberToken(ctx context.Context, memberID string, caller ports.Caller) (string, time.Time, error) {
	if !domain.RoleAllows(caller.Role, domain.ActionIssueToken) {
		return "", time.Time{}, domain.ErrForbidden
	}
	if memberID == "" {
		memberID = caller.MemberID
	}
	if memberID != caller.MemberID && !domain.RoleAllows(caller.Role, domain.ActionReserveOnBehalf) {
		return "", time.Time{}, domain.ErrForbidden
	}

	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return "", time.Time{}, err
	}

	issued, err := s.codec.Issue(memberID)
	if err != nil {
		return "", time.Time{}, err
	}
	s.log.Debug().Str("member_id", memberID).Time("expires_at", issued.ExpiresAt).Msg("dynamic token issued")
	return issued.Token, issued.ExpiresAt, nil
}

// CheckpointCode returns the current rotating code for a checkpoint site.
func (s *TokenService) CheckpointCode(siteID string, caller ports.Caller) (string, error) {
	if !domain.RoleAllows(caller.Role, domain.ActionCheckpointCode) {
		return "", domain.ErrForbidden
	}
	return s.checkpoints.Code(siteID), nil
}
