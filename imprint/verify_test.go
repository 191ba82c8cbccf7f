package imprint

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/0xcert/framework-sub004/crypto/hasher/keccak"
)

func mustVerify(t *testing.T, ev *Evidence, root Imprint) Result {
	t.Helper()
	res, err := Verify(h, ev, root)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestVerifyScenarioA(t *testing.T) {
	tree := mustBuild(t, bookEntries())
	ev := mustDisclose(t, tree, MustPath("name"))
	if mustVerify(t, ev, tree.Root()) != Valid {
		t.Fatal("Expect valid evidence")
	}
}

func TestVerifyScenarioB(t *testing.T) {
	tree := mustBuild(t, []Entry{
		Leaf(MustPath("title"), "x"),
		Container(MustPath("books")),
	})
	for _, p := range []Path{MustPath("title"), MustPath("books"), {}} {
		ev := mustDisclose(t, tree, p)
		if mustVerify(t, ev, tree.Root()) != Valid {
			t.Errorf("Disclosing %s: expect valid evidence", p)
		}
	}
}

func TestVerifyEveryDisclosure(t *testing.T) {
	tree := mustBuild(t, libraryEntries())
	var paths []Path
	for _, n := range tree.Nodes() {
		paths = append(paths, n.Path())
	}
	for _, p := range paths {
		ev := mustDisclose(t, tree, p)
		if mustVerify(t, ev, tree.Root()) != Valid {
			t.Errorf("Disclosing %s: expect valid evidence", p)
		}
		for _, q := range paths {
			ev := mustDisclose(t, tree, p, q)
			if mustVerify(t, ev, tree.Root()) != Valid {
				t.Errorf("Disclosing %s and %s: expect valid evidence", p, q)
			}
		}
	}
}

func TestVerifyEmptyTree(t *testing.T) {
	tree := mustBuild(t, nil)
	for _, ev := range []*Evidence{
		mustDisclose(t, tree),
		mustDisclose(t, tree, Path{}),
	} {
		if mustVerify(t, ev, tree.Root()) != Valid {
			t.Fatal("Expect valid evidence for the empty structure")
		}
	}
}

func TestVerifyAfterJSON(t *testing.T) {
	tree := mustBuild(t, libraryEntries())
	msg, err := mustDisclose(t, tree, MustPath("meta"), MustPath("id")).Marshal()
	if err != nil {
		t.Fatal(err)
	}
	ev, err := UnmarshalEvidence(msg)
	if err != nil {
		t.Fatal(err)
	}
	if mustVerify(t, ev, tree.Root()) != Valid {
		t.Fatal("Expect valid evidence after a JSON round trip")
	}
}

func TestVerifyTampered(t *testing.T) {
	tree := mustBuild(t, libraryEntries())
	fresh := func() *Evidence {
		return mustDisclose(t, tree, MustPath("owner", "name"), MustPath("meta", "year"))
	}
	flip := func(b Imprint) Imprint {
		c := append(Imprint(nil), b...)
		c[0] ^= 0x01
		return c
	}

	for _, tc := range []struct {
		name   string
		tamper func(ev *Evidence)
	}{
		{"value", func(ev *Evidence) { ev.Values[0].Value = "bob" }},
		{"value type", func(ev *Evidence) { ev.Values[1].Value = "1999.6" }},
		{"node hash", func(ev *Evidence) { ev.Nodes[0].Hash = flip(ev.Nodes[0].Hash) }},
		{"leaf proof hash", func(ev *Evidence) {
			last := len(ev.Proofs) - 1
			ev.Proofs[last].Hash = flip(ev.Proofs[last].Hash)
		}},
		{"root proof hash", func(ev *Evidence) { ev.Proofs[0].Hash = flip(ev.Proofs[0].Hash) }},
		{"swapped nodes", func(ev *Evidence) {
			ev.Nodes[0].Hash, ev.Nodes[1].Hash = ev.Nodes[1].Hash, ev.Nodes[0].Hash
		}},
		{"hasher", func(ev *Evidence) { ev.Hasher = keccak.Keccak256Hasher }},
	} {
		ev := fresh()
		tc.tamper(ev)
		res, err := Verify(h, ev, tree.Root())
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if res != Invalid {
			t.Errorf("%s: expect invalid evidence", tc.name)
		}
	}

	// a different published root
	other := mustBuild(t, bookEntries())
	if mustVerify(t, fresh(), other.Root()) != Invalid {
		t.Fatal("Expect invalid evidence against another root")
	}
}

func TestVerifyOtherHasher(t *testing.T) {
	tree := mustBuild(t, bookEntries())
	ev := mustDisclose(t, tree, MustPath("name"))
	res, err := Verify(keccak.New(), ev, tree.Root())
	if err != nil || res != Invalid {
		t.Fatal("Expect invalid evidence with another hasher, got", res, err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tree := mustBuild(t, libraryEntries())
	fresh := func() *Evidence {
		return mustDisclose(t, tree, MustPath("owner", "tags", 1))
	}

	for _, tc := range []struct {
		name   string
		tamper func(ev *Evidence)
	}{
		{"missing node", func(ev *Evidence) { ev.Nodes = ev.Nodes[:len(ev.Nodes)-1] }},
		{"extra node", func(ev *Evidence) { ev.Nodes = append(ev.Nodes, ev.Nodes[0]) }},
		{"missing proof", func(ev *Evidence) { ev.Proofs = ev.Proofs[:len(ev.Proofs)-1] }},
		{"no proofs", func(ev *Evidence) { ev.Proofs = nil }},
		{"extra proof", func(ev *Evidence) { ev.Proofs = append(ev.Proofs, ev.Proofs[1]) }},
		{"duplicated value", func(ev *Evidence) { ev.Values = append(ev.Values, ev.Values[0]) }},
		{"value at container", func(ev *Evidence) {
			ev.Values[0].Path = MustPath("owner", "tags")
		}},
		{"unknown key", func(ev *Evidence) { ev.Proofs[1].Key = Field("manager") }},
		{"index out of range", func(ev *Evidence) { ev.Proofs[1].Index = 42 }},
		{"index key mismatch", func(ev *Evidence) { ev.Proofs[3].Index = 0 }},
		{"position taken twice", func(ev *Evidence) { ev.Nodes[0].Index = 1 }},
		{"node index out of range", func(ev *Evidence) { ev.Nodes[0].Index = -1 }},
		{"short node hash", func(ev *Evidence) { ev.Nodes[0].Hash = ev.Nodes[0].Hash[:4] }},
		{"root not first", func(ev *Evidence) { ev.Proofs[0].Key = Field("owner") }},
		{"negative width", func(ev *Evidence) { ev.Proofs[3].Width = -1 }},
		{"widened leaf", func(ev *Evidence) { ev.Proofs[3].Width = 1 }},
		{"huge root width", func(ev *Evidence) { ev.Proofs[0].Width = math.MaxInt }},
		{"huge container width", func(ev *Evidence) { ev.Proofs[2].Width = 1 << 30 }},
		{"width past the nodes", func(ev *Evidence) { ev.Proofs[1].Width += len(ev.Nodes) }},
		{"unsupported value", func(ev *Evidence) { ev.Values[0].Value = map[string]interface{}{} }},
	} {
		ev := fresh()
		tc.tamper(ev)
		res, err := Verify(h, ev, tree.Root())
		if !errors.Is(err, ErrMalformedEvidence) {
			t.Errorf("%s: expect ErrMalformedEvidence, got %v", tc.name, err)
		}
		if res != Invalid {
			t.Errorf("%s: malformed evidence must not verify", tc.name)
		}
	}

	if _, err := Verify(h, nil, tree.Root()); !errors.Is(err, ErrMalformedEvidence) {
		t.Fatal("Expect ErrMalformedEvidence for nil evidence, got", err)
	}
	if _, err := Verify(nil, fresh(), tree.Root()); err != ErrNoHasher {
		t.Fatal("Expect ErrNoHasher, got", err)
	}
}

func TestVerifyHugeWidth(t *testing.T) {
	tree := mustBuild(t, bookEntries())
	ev := mustDisclose(t, tree, MustPath("name"))
	ev.Proofs[0].Width = math.MaxInt32
	if res, err := Verify(h, ev, tree.Root()); !errors.Is(err, ErrMalformedEvidence) || res != Invalid {
		t.Fatal("Expect ErrMalformedEvidence, got", res, err)
	}
}

func TestRecompute(t *testing.T) {
	tree := mustBuild(t, bookEntries())
	ev := mustDisclose(t, tree, MustPath("book", "title"))
	root, err := Recompute(h, ev)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Equal(tree.Root()) {
		t.Fatal("Recomputed root differs")
	}
	ev.Values[0].Value = json.Number("1")
	if _, err := Recompute(h, ev); !errors.Is(err, ErrImprintMismatch) {
		t.Fatal("Expect ErrImprintMismatch, got", err)
	}
}

func TestResultString(t *testing.T) {
	if Valid.String() != "valid" || Invalid.String() != "invalid" {
		t.Fatal("Unexpected result names")
	}
	var r Result
	if r != Invalid {
		t.Fatal("The zero Result must be Invalid")
	}
}
