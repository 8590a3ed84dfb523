/*
Package ports declares the interfaces the traversal engine consumes:
catalog lookups, rule and restriction resolution, session persistence, and
distributed locking. Adapters under pkg/adapters implement them.
*/
package ports
