package plugin

import (
	"errors"
	"testing"
)

func fixed(id ID, provider any) Factory {
	return func() Descriptor {
		return Descriptor{Provide(id, provider)}
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	// When
	r := NewRegistry()

	// Then
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.Registrations()) != 0 {
		t.Error("new registry should be empty")
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("should add registrations in order", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()

		// When
		r.Register(Registration{ID: "framework:first", New: fixed("framework:first", nil)})
		r.Register(Registration{ID: "framework:second", New: fixed("framework:second", nil)})

		// Then
		regs := r.Registrations()
		if len(regs) != 2 {
			t.Fatalf("len(regs) = %d, want 2", len(regs))
		}
		if regs[0].ID != "framework:first" {
			t.Errorf("regs[0].ID = %q, want %q", regs[0].ID, "framework:first")
		}
	})

	t.Run("should sort by priority descending", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()

		// When
		r.Register(Registration{ID: "a:low", Priority: 50})
		r.Register(Registration{ID: "a:high", Priority: 150})
		r.Register(Registration{ID: "a:default"})

		// Then
		regs := r.Registrations()
		want := []ID{"a:high", "a:default", "a:low"}
		for i, id := range want {
			if regs[i].ID != id {
				t.Errorf("regs[%d].ID = %q, want %q", i, regs[i].ID, id)
			}
		}
	})

	t.Run("should replace registration with same id", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()
		r.Register(Registration{ID: "framework:mocha", New: fixed("framework:mocha", "old")})

		// When
		r.Register(Registration{ID: "framework:mocha", New: fixed("framework:mocha", "new")})

		// Then
		if n := len(r.Registrations()); n != 1 {
			t.Fatalf("len(regs) = %d, want 1", n)
		}
		d, err := r.New("framework:mocha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d[0].Provider != "new" {
			t.Errorf("provider = %v, want new", d[0].Provider)
		}
	})
}

func TestRegistry_New(t *testing.T) {
	t.Parallel()

	t.Run("should return fresh descriptor on each call", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()
		r.Register(Registration{ID: "reporter:mocha", New: fixed("reporter:mocha", Module("karma-mocha-reporter"))})

		// When
		first, err := r.New("reporter:mocha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first[0].Provider = "mutated"
		second, err := r.New("reporter:mocha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Then
		if second[0].Provider != Module("karma-mocha-reporter") {
			t.Errorf("second provider = %v, want untouched module", second[0].Provider)
		}
	})

	t.Run("should fail for unknown id", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()

		// When
		_, err := r.New("launcher:Firefox")

		// Then
		if !errors.Is(err, ErrUnknownPlugin) {
			t.Errorf("err = %v, want ErrUnknownPlugin", err)
		}
	})

	t.Run("should wrap descriptor as spec", func(t *testing.T) {
		t.Parallel()

		// Given
		r := NewRegistry()
		r.Register(Registration{ID: "framework:mocha", New: fixed("framework:mocha", nil)})

		// When
		spec, err := r.Spec("framework:mocha")

		// Then
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !spec.IsDescriptor() {
			t.Errorf("spec kind = %v, want descriptor", spec.Kind())
		}
		if !r.Has("framework:mocha") || r.Has("framework:jasmine") {
			t.Error("Has returned unexpected result")
		}
	})
}

func TestRegistry_Clear(t *testing.T) {
	t.Parallel()

	// Given
	r := NewRegistry()
	r.Register(Registration{ID: "framework:test"})

	// When
	r.Clear()

	// Then
	if len(r.Registrations()) != 0 {
		t.Error("Clear did not remove registrations")
	}
}
