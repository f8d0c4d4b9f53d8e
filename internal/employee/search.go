package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SearchCriteria holds the optional filters of a directory search. A nil
// field is absent; a field holding only whitespace is treated the same way.
type SearchCriteria struct {
	Keyword    *string
	Department *string
	Position   *string
	Status     *Status
	MinSalary  *decimal.Decimal
	MaxSalary  *decimal.Decimal
}

// SearchRule names the single filter a search applies.
type SearchRule string

const (
	RuleKeyword              SearchRule = "keyword"
	RuleDepartmentWithSalary SearchRule = "department_salary"
	RuleDepartment           SearchRule = "department"
	RulePosition             SearchRule = "position"
	RuleStatus               SearchRule = "status"
	RuleSalaryRange          SearchRule = "salary_range"
	RuleAll                  SearchRule = "all"
)

// Rule picks the first applicable filter. Criteria are not combined: a
// keyword wins over everything else, and a department only pairs with a
// salary range when both bounds are present.
func (c SearchCriteria) Rule() SearchRule {
	switch {
	case !blank(c.Keyword):
		return RuleKeyword
	case !blank(c.Department) && c.hasSalaryRange():
		return RuleDepartmentWithSalary
	case !blank(c.Department):
		return RuleDepartment
	case !blank(c.Position):
		return RulePosition
	case c.Status != nil && strings.TrimSpace(string(*c.Status)) != "":
		return RuleStatus
	case c.hasSalaryRange():
		return RuleSalaryRange
	default:
		return RuleAll
	}
}

// Matcher returns the predicate for the rule Rule selects.
func (c SearchCriteria) Matcher() func(*Employee) bool {
	switch c.Rule() {
	case RuleKeyword:
		return matchKeyword(strings.TrimSpace(*c.Keyword))
	case RuleDepartmentWithSalary:
		inDept := matchDepartment(*c.Department)
		inRange := matchSalary(*c.MinSalary, *c.MaxSalary)
		return func(e *Employee) bool { return inDept(e) && inRange(e) }
	case RuleDepartment:
		return matchDepartment(*c.Department)
	case RulePosition:
		return matchPosition(*c.Position)
	case RuleStatus:
		status := *c.Status
		return func(e *Employee) bool { return e.Status == status }
	case RuleSalaryRange:
		return matchSalary(*c.MinSalary, *c.MaxSalary)
	default:
		return func(*Employee) bool { return true }
	}
}

func (c SearchCriteria) hasSalaryRange() bool {
	return c.MinSalary != nil && c.MaxSalary != nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// matchKeyword is a case-insensitive substring match over the name, email,
// department and position fields.
func matchKeyword(keyword string) func(*Employee) bool {
	needle := strings.ToLower(keyword)
	return func(e *Employee) bool {
		for _, field := range []string{e.FirstName, e.LastName, e.Email, e.Department, e.Position} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

func matchDepartment(department string) func(*Employee) bool {
	return func(e *Employee) bool { return e.Department == department }
}

func matchPosition(position string) func(*Employee) bool {
	return func(e *Employee) bool { return e.Position == position }
}

// matchSalary is inclusive on both bounds. An inverted range matches nothing.
func matchSalary(min, max decimal.Decimal) func(*Employee) bool {
	return func(e *Employee) bool {
		return e.Salary.GreaterThanOrEqual(min) && e.Salary.LessThanOrEqual(max)
	}
}
