package logsafe

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serializer events.
var (
	SignalDescriptorCreated  = capitan.NewSignal("logsafe.descriptor.created", "Type policy resolved and cached")
	SignalDescriptorRejected = capitan.NewSignal("logsafe.descriptor.rejected", "Type policy invalid, type treated as opaque")
	SignalSerializeComplete  = capitan.NewSignal("logsafe.serialize.complete", "Value rendered")
	SignalSerializeFailed    = capitan.NewSignal("logsafe.serialize.failed", "Rendering failed, original value returned")
)

// Keys for typed event data.
var (
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeyFormat     = capitan.NewStringKey("format")
	KeyMode       = capitan.NewStringKey("mode")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeySize       = capitan.NewIntKey("size")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitDescriptorCreated emits an event when a type descriptor is cached.
func emitDescriptorCreated(ctx context.Context, desc *typeDescriptor) {
	capitan.Emit(ctx, SignalDescriptorCreated,
		KeyTypeName.Field(desc.name),
		KeyFormat.Field(string(desc.policy.Format)),
		KeyMode.Field(string(desc.policy.Mode)),
		KeyFieldCount.Field(len(desc.fields)),
	)
}

// emitDescriptorRejected emits an event when a declared policy cannot be used.
func emitDescriptorRejected(ctx context.Context, typeName string, err error) {
	capitan.Error(ctx, SignalDescriptorRejected,
		KeyTypeName.Field(typeName),
		KeyError.Field(err),
	)
}

// emitSerializeComplete emits an event when a value is rendered.
func emitSerializeComplete(ctx context.Context, typeName string, format Format, size int, duration time.Duration) {
	capitan.Emit(ctx, SignalSerializeComplete,
		KeyTypeName.Field(typeName),
		KeyFormat.Field(string(format)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	)
}

// emitSerializeFailed emits an event when a failure is absorbed.
func emitSerializeFailed(ctx context.Context, typeName string, duration time.Duration, err error) {
	capitan.Error(ctx, SignalSerializeFailed,
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyError.Field(err),
	)
}
