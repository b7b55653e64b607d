// Package testing provides fixtures for logsafe tests and benchmarks.
package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/logsafe"
)

// SimpleUser is a type without a policy; Serialize passes it through.
type SimpleUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Address is a nested eligible type.
type Address struct {
	Street string `json:"street" log.max:"8"`
	City   string `json:"city"`
}

// SanitizedUser demonstrates every field directive.
type SanitizedUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email" log.mask:"email"`
	Password  string         `json:"password" log:"-"`
	Card      string         `json:"card" log.mask:"4"`
	Token     string         `json:"token" log.hash:"sha256"`
	Roles     []string       `json:"roles" log.size:"true"`
	Bio       string         `json:"bio" log.max:"16"`
	Manager   *SanitizedUser `json:"manager" log.null:"true"`
	Address   *Address       `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
}

// Team is a structured collection holder.
type Team struct {
	Name    string           `json:"name"`
	Members []*SanitizedUser `json:"members"`
}

// RegisterFixtures registers the fixture types, failing tb on error.
func RegisterFixtures(tb testing.TB) {
	tb.Helper()
	if err := logsafe.Register[Address](); err != nil {
		tb.Fatalf("Register[Address]() error: %v", err)
	}
	if err := logsafe.Register[SanitizedUser](); err != nil {
		tb.Fatalf("Register[SanitizedUser]() error: %v", err)
	}
	if err := logsafe.Register[Team](logsafe.Structured(), logsafe.WithMaxDepth(3)); err != nil {
		tb.Fatalf("Register[Team]() error: %v", err)
	}
}

// NewSanitizedUser returns a fully populated fixture.
func NewSanitizedUser() *SanitizedUser {
	return &SanitizedUser{
		ID:        "u-123",
		Email:     "alice@example.com",
		Password:  "hunter2",
		Card:      "4111111111111111",
		Token:     "tok_live_abc",
		Roles:     []string{"admin", "ops", "billing"},
		Bio:       "Platform engineer who writes far too many log lines",
		Address:   &Address{Street: "1 Infinite Loop", City: "Cupertino"},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// NewTeam returns a team of n fixture users sharing one manager.
func NewTeam(n int) *Team {
	manager := NewSanitizedUser()
	manager.ID = "u-boss"
	team := &Team{Name: "platform"}
	for i := 0; i < n; i++ {
		u := NewSanitizedUser()
		u.Manager = manager
		team.Members = append(team.Members, u)
	}
	return team
}
