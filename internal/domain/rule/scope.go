package rule

import (
	"sort"
	"strings"

	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
)

// ScopeKind discriminates the scope union. The legacy data encodes scopes as
// strings ("all", "dept:X", "sector:X", "emp:1,2,3"); ParseScope is the only
// place that text form is interpreted.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeDepartment
	ScopeSector
	ScopeEmployees
)

// Scope selects which employees a rule or leave applies to.
type Scope struct {
	Kind  ScopeKind
	Name  string              // department or sector name
	Codes map[string]struct{} // normalized employee codes
}

// ParseScope parses the textual scope form at the data-loading boundary.
// Unrecognized prefixes fall back to an employee-code list scope holding the
// raw value, matching how the legacy data treats bare code lists.
func ParseScope(raw string) Scope {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || strings.EqualFold(raw, "all") || raw == "الكل" || raw == "كل":
		return Scope{Kind: ScopeAll}
	case strings.HasPrefix(raw, "dept:"):
		return Scope{Kind: ScopeDepartment, Name: strings.TrimSpace(strings.TrimPrefix(raw, "dept:"))}
	case strings.HasPrefix(raw, "sector:"):
		return Scope{Kind: ScopeSector, Name: strings.TrimSpace(strings.TrimPrefix(raw, "sector:"))}
	case strings.HasPrefix(raw, "emp:"):
		return Scope{Kind: ScopeEmployees, Codes: parseCodeList(strings.TrimPrefix(raw, "emp:"))}
	default:
		return Scope{Kind: ScopeEmployees, Codes: parseCodeList(raw)}
	}
}

func parseCodeList(list string) map[string]struct{} {
	codes := make(map[string]struct{})
	for _, part := range strings.Split(list, ",") {
		code := arabic.NormalizeCode(part)
		if code != "" {
			codes[code] = struct{}{}
		}
	}
	return codes
}

// Matches reports whether the scope applies to the employee.
func (s Scope) Matches(emp employee.Employee) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeDepartment:
		return strings.TrimSpace(emp.Department) == s.Name
	case ScopeSector:
		return strings.TrimSpace(emp.Sector) == s.Name
	case ScopeEmployees:
		_, ok := s.Codes[arabic.NormalizeCode(emp.Code)]
		return ok
	}
	return false
}

// String renders the scope back to its textual form, with employee codes
// sorted for determinism.
func (s Scope) String() string {
	switch s.Kind {
	case ScopeAll:
		return "all"
	case ScopeDepartment:
		return "dept:" + s.Name
	case ScopeSector:
		return "sector:" + s.Name
	case ScopeEmployees:
		codes := make([]string, 0, len(s.Codes))
		for c := range s.Codes {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		return "emp:" + strings.Join(codes, ",")
	}
	return ""
}
