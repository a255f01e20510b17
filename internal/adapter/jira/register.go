package jira

import (
	"github.com/agenthub/agenthub/internal/port/toolinvoker"
	"github.com/agenthub/agenthub/internal/resilience"
)

var breakers *resilience.Group

// Register makes the Jira invoker available to the dispatcher.
func Register(group *resilience.Group) {
	breakers = group
	toolinvoker.Register(invokerName, func(config map[string]string) (toolinvoker.Invoker, error) {
		inv := NewInvoker(config)
		if breakers != nil {
			inv.SetBreaker(breakers.For(invokerName))
		}
		return inv, nil
	})
}
