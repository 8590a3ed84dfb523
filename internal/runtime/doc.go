/*
Package runtime implements the quiz traversal state machine.

A run is always in one of two states: awaiting an answer at a question, or
terminated with a recommendation set. Advance consumes an answer and follows
its transition rule; Rewind truncates the history back to an earlier
question. Both consult the catalog, rule, and restriction ports on every
call and never keep memo state of their own, which is what makes a truncated
history replay to exactly the same place.
*/
package runtime
