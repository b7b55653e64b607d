package logsafe

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestEmitDescriptorCreated(_ *testing.T) {
	// Should not panic
	desc := ineligible(reflect.TypeFor[Leaf]())
	emitDescriptorCreated(context.Background(), desc)
}

func TestEmitDescriptorRejected(_ *testing.T) {
	emitDescriptorRejected(context.Background(), "app.User", errors.New("test error"))
}

func TestEmitSerializeComplete(_ *testing.T) {
	emitSerializeComplete(context.Background(), "app.User", FormatStructured, 128, 100*time.Microsecond)
}

func TestEmitSerializeFailed(_ *testing.T) {
	err := newRenderError(ErrRender, "app.User", errors.New("test error"))
	emitSerializeFailed(context.Background(), "app.User", 100*time.Microsecond, err)
}
