package storage

import (
	"context"

	"github.com/partygames/clockin/internal/model"
)

// Storage defines the interface for data persistence.
//
// The check-in engine is the only writer of Assignment.Team outside the
// initial insert; every other component reads through this interface and
// never mutates assignment records directly.
type Storage interface {
	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)
	GetMemberByName(ctx context.Context, name string) (*model.Member, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// Assignment operations
	SaveAssignment(ctx context.Context, assignment *model.Assignment) error
	GetAssignment(ctx context.Context, id model.AssignmentID) (*model.Assignment, error)
	GetAssignmentForMember(ctx context.Context, gameID model.GameID, memberID model.MemberID) (*model.Assignment, error)
	// ListAssignmentsForGame returns assignments in check-in order
	ListAssignmentsForGame(ctx context.Context, gameID model.GameID) ([]*model.Assignment, error)
	ListAssignmentsByTeam(ctx context.Context, gameID model.GameID, team model.Team) ([]*model.Assignment, error)
	ListAssignmentsByStatus(ctx context.Context, gameID model.GameID, status model.Status) ([]*model.Assignment, error)
	UpdateAssignmentTeam(ctx context.Context, id model.AssignmentID, team model.Team) error
}
