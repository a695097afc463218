package services_test

import (
	"context"
	"testing"

	"github.com/dweagle/extras/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithMediaType(ctx, "series")
	ctx = services.WithItemIndex(ctx, 7)
	ctx = services.WithInstance(ctx, "sonarr1")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if mt, ok := services.MediaTypeFromContext(ctx); !ok || mt != "series" {
		t.Fatalf("unexpected media type: %v %v", mt, ok)
	}
	if idx, ok := services.ItemIndexFromContext(ctx); !ok || idx != 7 {
		t.Fatalf("unexpected item index: %v %v", idx, ok)
	}
	if name, ok := services.InstanceFromContext(ctx); !ok || name != "sonarr1" {
		t.Fatalf("unexpected instance: %v %v", name, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMediaType(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.MediaTypeFromContext(ctx); ok {
		t.Fatal("expected no media type value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.ItemIndexFromContext(ctx); ok {
		t.Fatal("expected no item index value")
	}
}
