// Package core holds the plain domain records persisted and passed
// between the maze solving engine, its dispatcher, and its storage
// layer.
package core

import (
	"time"

	"mazemaster/internal/maze/coord"
)

// SolutionStatus is the state of a maze's solution record.
type SolutionStatus string

const (
	StatusNew                     SolutionStatus = "NEW"
	StatusProcessing              SolutionStatus = "PROCESSING"
	StatusSolvedMin               SolutionStatus = "SOLVED_MIN"
	StatusSolvedMax               SolutionStatus = "SOLVED_MAX"
	StatusFailedMax               SolutionStatus = "FAILED_MAX"
	StatusInvalidGeometry         SolutionStatus = "INVALID_GEOMETRY"
	StatusInvalidEntryInWall      SolutionStatus = "INVALID_ENTRY_INWALL"
	StatusInvalidEntryOutOfBounds SolutionStatus = "INVALID_ENTRY_OUTOFBOUNDS"
	StatusInvalidNoExit           SolutionStatus = "INVALID_NOEXIT"
	StatusInvalidMultiExit        SolutionStatus = "INVALID_MULTIEXIT"
	StatusSystemFail              SolutionStatus = "SYSTEM_FAIL"
)

// Terminal reports whether status can never transition further, except
// along the documented SOLVED_MIN -> PROCESSING -> {SOLVED_MAX,
// FAILED_MAX, SYSTEM_FAIL} upgrade arc.
func (s SolutionStatus) Terminal() bool {
	switch s {
	case StatusInvalidGeometry, StatusInvalidEntryInWall, StatusInvalidEntryOutOfBounds,
		StatusInvalidNoExit, StatusInvalidMultiExit, StatusSystemFail, StatusFailedMax, StatusSolvedMax:
		return true
	default:
		return false
	}
}

// Maze is a stored maze definition owned by a user.
type Maze struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	MazeNum     int                `json:"mazenum"`
	Fingerprint string             `json:"fingerprint"`
	Dimension   coord.Dimension    `json:"dimension"`
	Entrance    coord.Coordinate   `json:"entrance"`
	Walls       []coord.Coordinate `json:"walls"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Solution is the cached solve outcome for a maze fingerprint. It is
// keyed by fingerprint rather than maze ID: distinct mazes that hash
// identically intentionally share one solution record, and a solution
// outlives the deletion of the maze that produced it.
type Solution struct {
	ID           string             `json:"id"`
	Fingerprint  string             `json:"fingerprint"`
	Status       SolutionStatus     `json:"status"`
	DetectedExit *coord.Coordinate  `json:"detected_exit,omitempty"`
	SolutionMin  []coord.Coordinate `json:"solution_min,omitempty"`
	SolutionMax  []coord.Coordinate `json:"solution_max,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// User is the owner of record for mazes and sessions. Account
// management beyond this shape (password policy, profile fields) is
// handled by a collaborator outside this module.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// IssuedToken records a session token's validity window for
// revocation bookkeeping.
type IssuedToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DeletedToken is the record shape of a revocation tombstone for a
// token ID. session.Verify does not consult it: a token is accepted
// on its signature and expiry alone.
type DeletedToken struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Key is the record shape of opaque signing-key material stored by
// designation. Session tokens are signed with the configured
// SESSION_SECRET; no code path reads a Key record.
type Key struct {
	ID          string `json:"id"`
	Designation string `json:"designation"`
	Material    string `json:"material"`
}
