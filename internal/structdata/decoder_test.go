package structdata

import (
	"testing"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("zulu", 1)
	m.Set("alpha", 2)
	m.Set("mike", 3)
	m.Set("alpha", 4)

	keys := m.Keys()
	want := []string{"zulu", "alpha", "mike"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: got %q want %q", i, keys[i], want[i])
		}
	}

	if value, ok := m.Get("alpha"); !ok || value != 4 {
		t.Fatalf("expected updated value for alpha, got %v (present=%v)", value, ok)
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", m.Len())
	}
}

func TestDecodeSequenceOfMappings(t *testing.T) {
	decoder := NewDecoder()

	value, err := decoder.Decode([]byte("- name: first\n  count: 1\n- name: second\n  count: 2\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	items, ok := value.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected a 2-item sequence, got %#v", value)
	}

	first, ok := items[0].(*Map)
	if !ok {
		t.Fatalf("expected an ordered map, got %#v", items[0])
	}
	keys := first.Keys()
	if len(keys) != 2 || keys[0] != "name" || keys[1] != "count" {
		t.Fatalf("expected document key order, got %v", keys)
	}
	if name, _ := first.Get("name"); name != "first" {
		t.Fatalf("expected name first, got %v", name)
	}
	if count, _ := first.Get("count"); count != 1 {
		t.Fatalf("expected count 1, got %v (%T)", count, count)
	}
}

func TestDecodeScalarTypes(t *testing.T) {
	decoder := NewDecoder()

	value, err := decoder.Decode([]byte("text: hello\nnumber: 42\nratio: 1.5\nflag: true\nnothing: null\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	m, ok := value.(*Map)
	if !ok {
		t.Fatalf("expected an ordered map, got %#v", value)
	}

	cases := []struct {
		key  string
		want any
	}{
		{"text", "hello"},
		{"number", 42},
		{"ratio", 1.5},
		{"flag", true},
		{"nothing", nil},
	}
	for _, tc := range cases {
		got, present := m.Get(tc.key)
		if !present {
			t.Fatalf("missing key %q", tc.key)
		}
		if got != tc.want {
			t.Fatalf("key %q: got %v (%T) want %v", tc.key, got, got, tc.want)
		}
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	decoder := NewDecoder()

	value, err := decoder.Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for empty input, got %#v", value)
	}
}

func TestDecodeAliases(t *testing.T) {
	decoder := NewDecoder()

	value, err := decoder.Decode([]byte("defaults: &base\n  level: info\noverride:\n  <<: *base\n  extra: yes\nrepeat: *base\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	m, ok := value.(*Map)
	if !ok {
		t.Fatalf("expected an ordered map, got %#v", value)
	}
	repeat, present := m.Get("repeat")
	if !present {
		t.Fatalf("missing aliased key")
	}
	aliased, ok := repeat.(*Map)
	if !ok {
		t.Fatalf("expected the alias to resolve to a map, got %#v", repeat)
	}
	if level, _ := aliased.Get("level"); level != "info" {
		t.Fatalf("expected aliased value, got %v", level)
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	decoder := NewDecoder()

	if _, err := decoder.Decode([]byte("key: [unclosed\n")); err == nil {
		t.Fatalf("expected a decode error")
	}
}
