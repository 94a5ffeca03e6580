package reconciler

type HeadStateForTest = headState

var PreferBuildForTest = preferBuild

func EvaluateUnitRuleForTest(cfg Config, head *HeadStateForTest) string {
	return evaluateUnitRules(cfg, head).Name
}

func UnitRuleNamesForTest() []string {
	names := make([]string, 0, len(unitRules))
	for _, rule := range unitRules {
		names = append(names, rule.Name)
	}
	return names
}
