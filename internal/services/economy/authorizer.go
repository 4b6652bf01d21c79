package economy

import "context"

// StaticAuthorizer grants the admin capability to a fixed id allowlist,
// matching the single-deployment, cooperative threat model.
type StaticAuthorizer struct {
	admins map[uint64]struct{}
}

func NewStaticAuthorizer(adminIDs []uint64) *StaticAuthorizer {
	admins := make(map[uint64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &StaticAuthorizer{admins: admins}
}

func (a *StaticAuthorizer) IsAdmin(_ context.Context, callerID uint64) (bool, error) {
	_, ok := a.admins[callerID]

	return ok, nil
}
