package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dweagle/extras/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrUnavailable, "radarr", "fetch movie", "radarr1", base)
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"radarr", "fetch movie", "radarr1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestMarkerForStatus(t *testing.T) {
	tests := map[int]error{
		401: services.ErrUnauthorized,
		403: services.ErrUnauthorized,
		404: services.ErrUnexpectedResponse,
		502: services.ErrUnavailable,
	}
	for code, want := range tests {
		if got := services.MarkerForStatus(code); got != want {
			t.Fatalf("MarkerForStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestHintFollowsMarker(t *testing.T) {
	unauthorized := services.Wrap(services.ErrUnauthorized, "sonarr", "fetch series", "", nil)
	if hint := services.Hint(unauthorized); !strings.Contains(hint, "api_key") {
		t.Fatalf("expected api_key hint, got %q", hint)
	}
	transport := services.Wrap(nil, "jellyfin", "fetch items", "", errors.New("timeout"))
	if hint := services.Hint(transport); !strings.Contains(hint, "reachable") {
		t.Fatalf("expected reachability hint, got %q", hint)
	}
	if services.Hint(nil) != "" {
		t.Fatal("expected empty hint for nil error")
	}
}
