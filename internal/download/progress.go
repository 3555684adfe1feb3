package download

// Percent converts byte counts into a 0-100 completion value.
// An unknown or zero total counts as complete.
func Percent(downloaded, total int64) float64 {
	if total <= 0 {
		return 100
	}
	if downloaded <= 0 {
		return 0
	}
	percent := float64(downloaded) / float64(total) * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}
