package report

import (
	"context"

	"report-backend/orm"
)

// effectiveAuthorID derives the author restriction for "my reports":
// admins see everything (nil), everyone else only their own. An identity
// that does not resolve to a known user surfaces as NotFound.
func (s *Service) effectiveAuthorID(
	ctx context.Context,
	identity Identity,
) (*uint64, error) {
	if identity.Role == orm.RoleAdmin {
		return nil, nil
	}

	user, err := s.store.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	return &user.ID, nil
}
