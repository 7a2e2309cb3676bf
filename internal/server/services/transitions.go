package services

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// TransitionPolicy decides whether a manual status change is allowed. It is
// consulted by UpdateServer only; a transfer always moves the server to
// transit.
type TransitionPolicy interface {
	Check(from, to models.ServerStatus) error
}

// PermissiveTransitions accepts any change to a known status.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Check(from, to models.ServerStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, to)
	}
	return nil
}

// TransitionTable allows only the listed moves. Statuses missing from the
// table cannot be left.
type TransitionTable map[models.ServerStatus][]models.ServerStatus

// LifecycleTransitions is the documented server lifecycle.
var LifecycleTransitions = TransitionTable{
	models.StatusActive:  {models.StatusTransit},
	models.StatusTransit: {models.StatusActive, models.StatusSetup, models.StatusField, models.StatusReady},
	models.StatusSetup:   {models.StatusField, models.StatusActive},
}

func (t TransitionTable) Check(from, to models.ServerStatus) error {
	if err := (PermissiveTransitions{}).Check(from, to); err != nil {
		return err
	}
	if from == to || slices.Contains(t[from], to) {
		return nil
	}
	return fmt.Errorf("%w: status change %s -> %s is not allowed", common.ErrorValidation, from, to)
}
