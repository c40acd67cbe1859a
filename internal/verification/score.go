package verification

const (
	DefaultScore = 100

	scoreVerified         = 100
	scoreIdentityUnproven = 50
	scoreUnproven         = 60
)

// AggregateScore is the integer mean of the scored checks. A check with no
// report (missing key) or with a report that has no score yet counts as
// DefaultScore, whether or not the underlying call ever succeeded.
func AggregateScore(scores map[CheckKind]*int) int {
	total := 0
	for _, kind := range ScoredChecks {
		s, ok := scores[kind]
		if !ok || s == nil {
			total += DefaultScore
			continue
		}
		total += *s
	}
	return total / len(ScoredChecks)
}

func IntPtr(i int) *int {
	return &i
}
