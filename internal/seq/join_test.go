package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scriptObject struct {
	Name string
}

type describe struct {
	Name  string
	Label string
}

type row struct {
	Source string
	Target string
}

func sameName(s scriptObject, d describe) bool { return s.Name == d.Name }

func toRow(s *scriptObject, d *describe) row {
	var r row
	if s != nil {
		r.Source = s.Name
	}
	if d != nil {
		r.Target = d.Label
	}
	return r
}

var (
	configured = []scriptObject{{"Account"}, {"Contact"}, {"Account"}, {"Lead"}}
	describes  = []describe{{"Account", "Accounts"}, {"Contact", "Contacts"}, {"Contact", "People"}, {"Case", "Cases"}}
)

func TestInnerJoin(t *testing.T) {
	got := InnerJoin(configured, describes, sameName, toRow)
	want := []row{
		{"Account", "Accounts"},
		{"Contact", "Contacts"},
		{"Contact", "People"},
		{"Account", "Accounts"},
	}
	assert.Equal(t, want, got)
}

func TestInnerJoinCardinality(t *testing.T) {
	got := InnerJoin(configured, describes, sameName, toRow)

	expected := 0
	for _, s := range configured {
		for _, d := range describes {
			if sameName(s, d) {
				expected++
			}
		}
	}
	assert.Len(t, got, expected)
}

func TestLeftJoin(t *testing.T) {
	got := LeftJoin(configured, describes, sameName, toRow)
	want := []row{
		{"Account", "Accounts"},
		{"Contact", "Contacts"},
		{"Contact", "People"},
		{"Account", "Accounts"},
		{"Lead", ""},
	}
	assert.Equal(t, want, got)
	assert.GreaterOrEqual(t, len(got), len(configured))
}

func TestLeftJoinEqualsSourceLengthWhenAllMatchOnce(t *testing.T) {
	src := []scriptObject{{"Account"}, {"Case"}}
	got := LeftJoin(src, describes, sameName, toRow)
	assert.Len(t, got, len(src))
}

func TestLeftJoinUnmatchedLabelIsNil(t *testing.T) {
	type view struct {
		Name  string
		Label *string
	}

	got := LeftJoin(
		[]scriptObject{{"Account"}},
		[]describe{{"Contact", "Contacts"}},
		sameName,
		func(s *scriptObject, d *describe) view {
			v := view{Name: s.Name}
			if d != nil {
				v.Label = &d.Label
			}
			return v
		},
	)

	assert.Equal(t, []view{{Name: "Account", Label: nil}}, got)
}

func TestRightJoin(t *testing.T) {
	got := RightJoin(configured, describes, sameName, toRow)
	want := []row{
		{"Account", "Accounts"},
		{"Account", "Accounts"},
		{"Contact", "Contacts"},
		{"Contact", "People"},
		{"", "Cases"},
	}
	assert.Equal(t, want, got)
}

func TestFullJoin(t *testing.T) {
	got := FullJoin(configured, describes, sameName, toRow)
	want := []row{
		{"Account", "Accounts"},
		{"Contact", "Contacts"},
		{"Contact", "People"},
		{"Account", "Accounts"},
		{"Lead", ""},
		{"", "Cases"},
	}
	assert.Equal(t, want, got)
}

func TestFullJoinCompleteness(t *testing.T) {
	type pair struct {
		S *scriptObject
		D *describe
	}
	got := FullJoin(configured, describes, sameName, func(s *scriptObject, d *describe) pair {
		return pair{s, d}
	})

	for i := range configured {
		found := false
		for _, p := range got {
			if p.S == &configured[i] {
				found = true
			}
		}
		assert.True(t, found, "source %d missing from full join", i)
	}
	for j := range describes {
		found := false
		for _, p := range got {
			if p.D == &describes[j] {
				found = true
			}
		}
		assert.True(t, found, "target %d missing from full join", j)
	}
}

func TestCrossJoin(t *testing.T) {
	calls := 0
	got := CrossJoin(configured, describes, func(s *scriptObject, d *describe) row {
		calls++
		return toRow(s, d)
	})
	assert.Len(t, got, len(configured)*len(describes))
	assert.Equal(t, len(configured)*len(describes), calls)
	assert.Equal(t, row{"Account", "Accounts"}, got[0])
	assert.Equal(t, row{"Lead", "Cases"}, got[len(got)-1])
}

func TestJoinsWithEmptyInputs(t *testing.T) {
	assert.Empty(t, InnerJoin(nil, describes, sameName, toRow))
	assert.Empty(t, LeftJoin(nil, describes, sameName, toRow))
	assert.Equal(t, []row{{"Account", ""}}, LeftJoin([]scriptObject{{"Account"}}, nil, sameName, toRow))
	assert.Len(t, RightJoin(nil, describes, sameName, toRow), len(describes))
	assert.Len(t, FullJoin(configured, nil, sameName, toRow), len(configured))
	assert.Empty(t, CrossJoin(configured, []describe{}, toRow))
}

func TestJoinPredicatePanicPropagates(t *testing.T) {
	assert.Panics(t, func() {
		InnerJoin(configured, describes, func(scriptObject, describe) bool { panic("boom") }, toRow)
	})
}

func TestJoinSelectorSeesInputReferences(t *testing.T) {
	src := []scriptObject{{"Account"}}
	got := InnerJoin(src, describes, sameName, func(s *scriptObject, d *describe) *scriptObject { return s })
	assert.Same(t, &src[0], got[0])
}
