// Package rules derives the computed placeholders of the office note from the values read
// out of the checklist workbook.
package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/locvowork/erp_office_note/internal/domain"
)

// Rule computes a set of derived entries from the raw mapping. A rule never mutates its
// input and returns nil or an empty map when it has nothing to contribute.
type Rule struct {
	Name   string
	Derive func(vars domain.Vars) domain.Vars
}

// Engine applies an ordered table of rules.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over rules; with no rules it uses Default.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = Default()
	}
	return &Engine{rules: rules}
}

// Rules returns the rule table in evaluation order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Apply evaluates every rule against vars and returns a new mapping with all derived
// entries merged over a copy of vars. Rules only see the raw values, never each other's output.
func (e *Engine) Apply(vars domain.Vars) domain.Vars {
	derived := make([]domain.Vars, 0, len(e.rules))
	for _, r := range e.rules {
		if out := r.Derive(vars); len(out) > 0 {
			derived = append(derived, out)
		}
	}
	return vars.Merge(derived...)
}

// Default is the rule table of the standard office note.
func Default() []Rule {
	return []Rule{
		{Name: "abbreviation", Derive: Abbreviation},
		{Name: "md_ceo", Derive: MdCeo},
		FlagRule("whether_declaration", DeclarationSubmitted, DeclarationNotSubmitted),
		FlagRule("whether_revenue_clients", RevenueClientsYes, RevenueClientsNo),
		FlagRule("whether_breakeven_date", BreakevenDateYes, BreakevenDateNo),
		FlagRule("whether_cash_losses", CashLossesYes, CashLossesNo),
		{Name: "business_plan_summary", Derive: BusinessPlanSummary},
		{Name: "infrastructure", Derive: Infrastructure},
	}
}

// Abbreviation derives applicant_name_abb from the first letter of each word of applicant_name.
func Abbreviation(vars domain.Vars) domain.Vars {
	name, ok := vars["applicant_name"]
	if !ok {
		return nil
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return domain.Vars{"applicant_name_abb": b.String()}
}

// normalizePerson lower-cases and trims a name; "" and "na" mean no such person.
func normalizePerson(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "na" {
		return "", false
	}
	return v, true
}

// MdCeo derives md_ceo_name and md_ceo_rating from md_name and ceo_name.
func MdCeo(vars domain.Vars) domain.Vars {
	md, hasMD := normalizePerson(vars["md_name"])
	ceo, hasCEO := normalizePerson(vars["ceo_name"])
	if !hasMD && !hasCEO {
		return domain.Vars{"md_ceo_name": "", "md_ceo_rating": ""}
	}

	display := func(name string, ok bool) string {
		if !ok {
			return "NA"
		}
		return name
	}

	var entity, names string
	switch {
	case hasMD && hasCEO && md == ceo:
		entity, names = "MD & CEO", md
	case hasMD && hasCEO:
		entity, names = "both the MD and CEO", md+" and "+ceo
	case hasMD:
		entity, names = "the MD", md
	default:
		entity, names = "the CEO", ceo
	}

	return domain.Vars{
		"md_ceo_name":   fmt.Sprintf("Name of MD: %s\nName of CEO: %s", display(md, hasMD), display(ceo, hasCEO)),
		"md_ceo_rating": fmt.Sprintf(mdCeoRatingFormat, entity, names),
	}
}

// FlagRule replaces a yes/no flag with one of two sentences. Any other value, including a
// missing flag, derives nothing and the raw value stays in place.
func FlagRule(flag, yes, no string) Rule {
	return Rule{
		Name: flag,
		Derive: func(vars domain.Vars) domain.Vars {
			switch strings.ToLower(strings.TrimSpace(vars[flag])) {
			case "yes":
				return domain.Vars{flag: yes}
			case "no":
				return domain.Vars{flag: no}
			default:
				return nil
			}
		},
	}
}

// BusinessPlanSummary trims business_plan_summary, falling back to a fixed sentence when empty.
func BusinessPlanSummary(vars domain.Vars) domain.Vars {
	summary := strings.TrimSpace(vars["business_plan_summary"])
	if summary == "" {
		summary = BusinessPlanMissing
	}
	return domain.Vars{"business_plan_summary": summary}
}

// Infrastructure replaces operations_undertaking with the undertaking sentence matching
// the declared mode of operations.
func Infrastructure(vars domain.Vars) domain.Vars {
	phrase := OfficeInfrastructure
	if strings.Contains(strings.ToLower(vars["operations"]), remoteOperationMarker) {
		phrase = RemoteInfrastructure
	}
	prefix := UndertakingMissing
	if strings.EqualFold(strings.TrimSpace(vars["operations_undertaking"]), undertakingProvided) {
		prefix = UndertakingSubmitted
	}
	return domain.Vars{"operations_undertaking": prefix + phrase}
}
