// Copyright (c) 2026 Novella. All rights reserved.

package portal

import (
	"context"

	"github.com/novellaclub/novella/internal/club/period"
)

type Repository interface {
	ListPortals(context context.Context) ([]*PortalStatus, error)
	GetPortal(context context.Context, id string) (*PortalStatus, error)
	GetPortalForPeriod(context context.Context, p period.Period, category period.Category) (*PortalStatus, error)
	CreatePortal(context context.Context, status *PortalStatus) error

	// SetNominationOpen and SetVotingOpen flip one gate. Opening a gate
	// force-closes the opposite gate in the same UPDATE statement.
	SetNominationOpen(context context.Context, id string, open bool) (*PortalStatus, error)
	SetVotingOpen(context context.Context, id string, open bool) (*PortalStatus, error)

	// ClosePortalForPeriod closes both gates for the given period.
	ClosePortalForPeriod(context context.Context, p period.Period, category period.Category) error
}
