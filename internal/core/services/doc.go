// Package services implements the driving port interfaces.
// Services contain the core probe logic and orchestrate
// calls to driven ports (adapters).
//
// Services never import a search client library directly; engines are
// reached through driven.SearchClientFactory.
package services
