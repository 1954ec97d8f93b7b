package vendors

// AddToMean folds x into a mean taken over n values.
func AddToMean(mean float64, n int, x float64) float64 {
	if n <= 0 {
		return x
	}
	return (mean*float64(n) + x) / float64(n+1)
}

// RemoveFromMean takes x back out of a mean taken over n values, n counting x.
// It is the inverse of AddToMean; removing the last value yields zero.
func RemoveFromMean(mean float64, n int, x float64) float64 {
	if n <= 1 {
		return 0
	}
	return (mean*float64(n) - x) / float64(n-1)
}
