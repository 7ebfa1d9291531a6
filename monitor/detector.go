package monitor

// CheckCrossing reports a downward threshold crossing: the prior observed
// price was at or above the threshold and the new price is strictly below
// it. A first observation with no prior price never fires, so a product that
// starts out cheap does not alert on sight.
func CheckCrossing(priorPrice int, hasPrior bool, newPrice, threshold int) bool {
	if !hasPrior {
		return false
	}
	return priorPrice >= threshold && newPrice < threshold
}
