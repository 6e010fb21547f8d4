package retry

import (
	"time"

	"github.com/minhph/orderflow/internal/core/effect"
)

// Named policies, tuned per collaborator. The store sits on the same network
// segment so its timeout is tight; the pricing service is a remote API and
// gets a longer leash; the cache is reached quickly or abandoned.
var (
	Store = Policy{
		MaxAttempts:     3,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        2 * time.Second,
		BackoffMultiple: 2.0,
		Timeout:         5 * time.Second,
	}

	ExternalAPI = Policy{
		MaxAttempts:     5,
		InitialDelay:    250 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		BackoffMultiple: 2.0,
		Timeout:         30 * time.Second,
	}

	Cache = Policy{
		MaxAttempts:     8,
		InitialDelay:    20 * time.Millisecond,
		MaxDelay:        500 * time.Millisecond,
		BackoffMultiple: 2.0,
		Timeout:         5 * time.Second,
	}

	Default = Policy{
		MaxAttempts:     3,
		InitialDelay:    200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffMultiple: 2.0,
		Timeout:         15 * time.Second,
	}
)

// Table maps effect groups to retry policies.
type Table map[effect.Group]Policy

// DefaultTable returns the standard group-to-policy mapping.
func DefaultTable() Table {
	return Table{
		effect.GroupStore:       Store,
		effect.GroupExternalAPI: ExternalAPI,
		effect.GroupCache:       Cache,
		effect.GroupDefault:     Default,
	}
}

// ForKind resolves the policy for an effect kind via its group.
func (t Table) ForKind(kind effect.Kind) Policy {
	if p, ok := t[effect.GroupOf(kind)]; ok {
		return p
	}
	return Default
}
