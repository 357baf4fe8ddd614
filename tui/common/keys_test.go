package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ToggleHints.Keys()) == 0 || km.ToggleHints.Keys()[0] != "?" {
		t.Fatalf("expected ? key binding for hints")
	}
	if len(km.ForceQuit.Keys()) == 0 || km.ForceQuit.Keys()[0] != "ctrl+c" {
		t.Fatalf("expected ctrl+c force quit binding")
	}
	if len(km.LoadMore.Keys()) == 0 || km.LoadMore.Keys()[0] != "m" {
		t.Fatalf("expected m to load more comments")
	}
	if len(km.Sort.Keys()) == 0 || km.Sort.Keys()[0] != "s" {
		t.Fatalf("expected s to toggle sorting")
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	for name, b := range map[string][]string{
		"quit": km.Quit.Keys(), "force": km.ForceQuit.Keys(), "refresh": km.Refresh.Keys(),
		"up": km.Up.Keys(), "down": km.Down.Keys(), "enter": km.Enter.Keys(),
		"more": km.LoadMore.Keys(), "sort": km.Sort.Keys(), "open": km.Open.Keys(),
		"back": km.Back.Keys(), "next": km.NextSection.Keys(), "prev": km.PrevSection.Keys(),
		"hints": km.ToggleHints.Keys(),
	} {
		for _, k := range b {
			if other, ok := seen[k]; ok {
				t.Fatalf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
