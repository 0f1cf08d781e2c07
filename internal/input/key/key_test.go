package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		key  Key
		r    rune
		mods Modifier
	}{
		{"z", KeyRune, 'z', ModNone},
		{"Z", KeyRune, 'z', ModNone},
		{"Ctrl+Z", KeyRune, 'z', ModCtrl},
		{"ctrl+shift+z", KeyRune, 'z', ModCtrl | ModShift},
		{"Meta+Y", KeyRune, 'y', ModMeta},
		{"Cmd+Shift+Z", KeyRune, 'z', ModMeta | ModShift},
		{"<C-z>", KeyRune, 'z', ModCtrl},
		{"<D-S-z>", KeyRune, 'z', ModMeta | ModShift},
		{"Escape", KeyEscape, 0, ModNone},
		{"Alt+Delete", KeyDelete, 0, ModAlt},
		{"+", KeyRune, '+', ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.spec, err)
			}
			if ev.Key != tt.key || ev.Rune != tt.r || ev.Modifiers != tt.mods {
				t.Errorf("Parse(%q) = %v/%q/%v, want %v/%q/%v",
					tt.spec, ev.Key, ev.Rune, ev.Modifiers, tt.key, tt.r, tt.mods)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("empty spec err = %v", err)
	}
	for _, spec := range []string{"Hyper+Z", "Ctrl+", "Ctrl+zz", "<X-z>"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestParseModUsesPrimary(t *testing.T) {
	ev := MustParse("Mod+Z")
	if ev.Modifiers != Primary() {
		t.Errorf("Mod+Z modifiers = %v, want %v", ev.Modifiers, Primary())
	}
}

func TestPrimaryFor(t *testing.T) {
	if PrimaryFor("darwin") != ModMeta {
		t.Error("darwin should use Meta")
	}
	if PrimaryFor("linux") != ModCtrl || PrimaryFor("windows") != ModCtrl {
		t.Error("linux/windows should use Ctrl")
	}
}

func TestParseAll(t *testing.T) {
	evs, err := ParseAll([]string{"Ctrl+Z", "Bogus+Z", "Meta+Z"})
	if err == nil {
		t.Error("expected joined error")
	}
	if len(evs) != 2 {
		t.Errorf("parsed %d events, want 2", len(evs))
	}
}

func TestEventMatches(t *testing.T) {
	undo := MustParse("Ctrl+Z")

	if !NewRuneEvent('z', ModCtrl).Matches(undo) {
		t.Error("Ctrl+z should match")
	}
	if !NewRuneEvent('Z', ModCtrl).Matches(undo) {
		t.Error("Ctrl+Z (caps lock) should match")
	}
	if NewRuneEvent('Z', ModCtrl|ModShift).Matches(undo) {
		t.Error("Ctrl+Shift+Z must not match Ctrl+Z")
	}
	if NewRuneEvent('z', ModMeta).Matches(undo) {
		t.Error("Meta+Z must not match Ctrl+Z")
	}
	if NewSpecialEvent(KeyEscape, ModNone).Matches(undo) {
		t.Error("Escape must not match")
	}
}

func TestEventConsume(t *testing.T) {
	ev := NewRuneEvent('z', ModCtrl)
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Fatal("fresh event should not be consumed")
	}
	ev.Consume()
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("Consume should prevent default and stop propagation")
	}
}

func TestEventString(t *testing.T) {
	tests := map[string]Event{
		"Ctrl+Shift+Z": NewRuneEvent('z', ModCtrl|ModShift),
		"Meta+Y":       NewRuneEvent('y', ModMeta),
		"Escape":       NewSpecialEvent(KeyEscape, ModNone),
	}
	for want, ev := range tests {
		if got := ev.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
