// Package domain contains the entities of the quiz graph (questions,
// answers, products, transition rules, restrictions), the session replay
// log, and the error taxonomy shared by the engine and its adapters.
package domain
