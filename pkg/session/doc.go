/*
Package session implements quiz run persistence orchestration.

It serializes concurrent access per quiz id with an in-process mutex and,
when configured, a distributed lock, so the read-decide-persist sequence of
an advance or rewind never interleaves with another request for the same run.
*/
package session
