package sudoku

import "errors"

// Sentinel errors for the solver and generator. Inconsistent and exhausted
// branches are handled internally by backtracking and never surface through
// the public API; callers only ever observe the errors below.
var (
	// ErrBoardSize reports an unsupported board dimension. Supported sizes
	// are perfect squares between MinBoardSize and MaxBoardSize.
	ErrBoardSize = errors.New("board size must be a perfect square in 4..25")

	// ErrInvalidValue reports a cell value outside 0..N.
	ErrInvalidValue = errors.New("value out of range for board")

	// ErrUnsolvable reports that the search space was exhausted without
	// finding a completion: the board has no solution.
	ErrUnsolvable = errors.New("board has no solution")

	// ErrTimedOut reports that the wall-clock budget was exceeded before a
	// solution was found. Diagnostic statistics remain available.
	ErrTimedOut = errors.New("solve exceeded time budget")

	// ErrDepthExceeded reports that the search hit its depth ceiling on
	// every open branch. With iterative deepening enabled this is retried
	// internally at larger ceilings until the time budget runs out.
	ErrDepthExceeded = errors.New("solve exceeded depth ceiling")
)

// errBranchFailed is the branch-local failure used inside the search for
// both inconsistent propagation and exhausted candidates. It never escapes
// Solve; the parent frame reacts by trying its next alternative.
var errBranchFailed = errors.New("branch failed")

// errCountReached stops the counting search early once the requested
// solution limit has been observed.
var errCountReached = errors.New("solution count limit reached")
