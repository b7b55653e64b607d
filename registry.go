package logsafe

import (
	"context"
	"reflect"
	"sync"
)

// Policied lets a type declare its policy without registration.
// The method is called once, on the zero value, when the type is first seen.
//
// Zero Mode and Format take their defaults but MaxDepth does not: a zero
// MaxDepth expands only the type's own fields, and nested objects render as
// MarkerMaxDepth. Start from DefaultPolicy() to get unlimited depth:
//
//	func (Order) LogPolicy() logsafe.TypePolicy {
//		p := logsafe.DefaultPolicy()
//		p.Format = logsafe.FormatStructured
//		return p
//	}
type Policied interface {
	LogPolicy() TypePolicy
}

var policiedType = reflect.TypeFor[Policied]()

var (
	descriptors = make(map[reflect.Type]*typeDescriptor)
	registered  = make(map[reflect.Type]bool)
	policies    *Config
	registryMu  sync.RWMutex
)

// Register declares T eligible for serialization with the given policy.
// Call it at startup, before T is logged. Registering again replaces the policy.
func Register[T any](opts ...PolicyOption) error {
	rt := reflect.TypeFor[T]()
	policy := DefaultPolicy()
	for _, opt := range opts {
		opt(&policy)
	}

	if rt.Kind() != reflect.Struct {
		return newConfigError(ErrInvalidPolicy, rt.String(), "", "")
	}
	if err := policy.Validate(); err != nil {
		return &ConfigError{Err: err, Type: rt.String()}
	}

	desc, err := buildDescriptor(rt, policy, nil)
	if err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	descriptors[rt] = desc
	registered[rt] = true

	emitDescriptorCreated(context.Background(), desc)
	return nil
}

// describe returns the cached descriptor for rt, building it on first use.
// Pointer types resolve to their element type.
func describe(rt reflect.Type) *typeDescriptor {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if desc, ok := descriptors[rt]; ok {
		registryMu.RUnlock()
		return desc
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if desc, ok := descriptors[rt]; ok {
		return desc
	}

	desc := resolve(rt)
	descriptors[rt] = desc
	if desc.eligible {
		emitDescriptorCreated(context.Background(), desc)
	}
	return desc
}

// resolve builds the descriptor for an unregistered type from the loaded
// policy file or the Policied interface. Callers hold registryMu.
func resolve(rt reflect.Type) *typeDescriptor {
	if rt.Kind() != reflect.Struct {
		return ineligible(rt)
	}

	var (
		policy    TypePolicy
		overrides map[string]map[string]string
	)
	switch {
	case policies != nil && policies.has(rt.String()):
		tc := policies.Types[rt.String()]
		policy = tc.policy()
		var err error
		if overrides, err = tc.overrides(); err != nil {
			emitDescriptorRejected(context.Background(), rt.String(), err)
			return ineligible(rt)
		}
	case reflect.PointerTo(rt).Implements(policiedType):
		policy = reflect.New(rt).Interface().(Policied).LogPolicy().normalize()
	default:
		return ineligible(rt)
	}

	if err := policy.Validate(); err != nil {
		emitDescriptorRejected(context.Background(), rt.String(), err)
		return ineligible(rt)
	}

	desc, err := buildDescriptor(rt, policy, overrides)
	if err != nil {
		emitDescriptorRejected(context.Background(), rt.String(), err)
		return ineligible(rt)
	}
	return desc
}

// setPolicies installs a policy file and drops cached descriptors it may
// change. Registered types keep their registered policy.
func setPolicies(cfg *Config) {
	registryMu.Lock()
	defer registryMu.Unlock()
	policies = cfg
	for rt := range descriptors {
		if !registered[rt] {
			delete(descriptors, rt)
		}
	}
}

// Reset clears registrations, cached descriptors, and loaded policies.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	descriptors = make(map[reflect.Type]*typeDescriptor)
	registered = make(map[reflect.Type]bool)
	policies = nil
}
