package regret

const avgStrategyTolerance = 1e-6

// RegretMatching derives a policy from a cumulative regret vector: the
// positive part of each action's regret, normalized; uniform if no
// action has positive regret. The result has len(regretSum) entries, so
// a nil slice yields an empty policy; an absent record is handled with
// UniformPolicy(n) instead.
func RegretMatching(regretSum []float64) []float64 {
	n := len(regretSum)
	policy := make([]float64, n)

	sum := 0.0
	for i, r := range regretSum {
		if r > 0 {
			policy[i] = r
			sum += r
		}
	}

	if sum <= 0 {
		uniform(policy)
		return policy
	}

	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

// UniformPolicy returns a policy placing 1/n probability on each of n
// actions. It is the fallback used whenever no infoset record exists
// yet, mirroring RegretMatching's all-zero case.
func UniformPolicy(n int) []float64 {
	policy := make([]float64, n)
	uniform(policy)
	return policy
}

func uniform(policy []float64) {
	if len(policy) == 0 {
		return
	}
	p := 1.0 / float64(len(policy))
	for i := range policy {
		policy[i] = p
	}
}

// AverageStrategy normalizes a cumulative strategy-sum vector into a
// policy. If the sum is within avgStrategyTolerance of zero (including
// an absent record, represented by a nil/empty strategySum alongside a
// nonzero n), it returns the uniform policy over n actions instead.
func AverageStrategy(strategySum []float64, n int) []float64 {
	sum := 0.0
	for _, s := range strategySum {
		sum += s
	}

	if sum < avgStrategyTolerance {
		return UniformPolicy(n)
	}

	policy := make([]float64, n)
	for i, s := range strategySum {
		policy[i] = s / sum
	}
	return policy
}
