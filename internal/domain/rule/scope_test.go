package rule

import (
	"testing"
	"time"

	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	cases := []struct {
		raw  string
		kind ScopeKind
	}{
		{"all", ScopeAll},
		{"ALL", ScopeAll},
		{"", ScopeAll},
		{"dept:Finance", ScopeDepartment},
		{"sector:North", ScopeSector},
		{"emp:1,2,3", ScopeEmployees},
		{"1,2,3", ScopeEmployees}, // bare code list from legacy imports
	}
	for _, c := range cases {
		s := ParseScope(c.raw)
		assert.Equal(t, c.kind, s.Kind, "raw=%q", c.raw)
	}
}

func TestScopeMatchesAll(t *testing.T) {
	s := ParseScope("all")
	assert.True(t, s.Matches(employee.Employee{Code: "7"}))
}

func TestScopeMatchesDepartment(t *testing.T) {
	s := ParseScope("dept:Finance")
	assert.True(t, s.Matches(employee.Employee{Code: "7", Department: "Finance"}))
	assert.True(t, s.Matches(employee.Employee{Code: "7", Department: " Finance "}))
	assert.False(t, s.Matches(employee.Employee{Code: "7", Department: "HR"}))
}

func TestScopeMatchesSector(t *testing.T) {
	s := ParseScope("sector:North")
	assert.True(t, s.Matches(employee.Employee{Code: "7", Sector: "North"}))
	assert.False(t, s.Matches(employee.Employee{Code: "7", Sector: "South"}))
}

func TestScopeMatchesEmployeeCodeForms(t *testing.T) {
	// "007" in scope must match "٧" on the employee and vice versa.
	s := ParseScope("emp:007, ٠١٢ ,HR-01")
	assert.True(t, s.Matches(employee.Employee{Code: "7"}))
	assert.True(t, s.Matches(employee.Employee{Code: "٠٠٧"}))
	assert.True(t, s.Matches(employee.Employee{Code: "12"}))
	assert.True(t, s.Matches(employee.Employee{Code: "HR-01"}))
	assert.False(t, s.Matches(employee.Employee{Code: "8"}))
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "all", ParseScope("all").String())
	assert.Equal(t, "dept:Finance", ParseScope("dept:Finance").String())
	assert.Equal(t, "emp:12,7", ParseScope("emp:007,012").String())
}

func TestRuleActiveOn(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	r := SpecialRule{StartDate: day("2024-02-01"), EndDate: day("2024-02-10")}

	assert.False(t, r.ActiveOn(day("2024-01-31")))
	assert.True(t, r.ActiveOn(day("2024-02-01")))
	assert.True(t, r.ActiveOn(day("2024-02-10")))
	assert.False(t, r.ActiveOn(day("2024-02-11")))
}
