// Package advanced holds the second worksheet: ten small exercises, several of
// which carry a deliberate defect for the student to find with a debugger.
//
// Defective functions keep their bug. Where a corrected counterpart exists it is
// a separate function (FindMinimumFixed, SafeDivide, At, Owned) so both
// behaviours stay observable.
package advanced
