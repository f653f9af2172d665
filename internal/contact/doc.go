// Package contact implements the contact-submission workflow: validate the
// visitor's message, hand it to a Dispatcher exactly once, and expose the
// outcome as a small state machine.
//
// States and transitions:
//
//	idle ──submit──▶ submitting ──ok──▶ success ──5s──▶ idle
//	                     │
//	                     └──fail──▶ error
//
// success and error both accept a new submit. A submit while submitting is
// refused with ErrSubmitInProgress. Invalid input never enters the machine.
//
// Each visitor owns one Workflow. The Registry keeps them in memory and
// closes them when a visitor goes idle or the server stops; a closed
// Workflow ignores pending timers and late dispatch results.
package contact
