// Package sudoku provides a generalized Sudoku constraint engine and
// puzzle generator.
//
// Version: 0.3.0
package sudoku

// Version is the current version of the Kanoku engine.
const Version = "0.3.0"
