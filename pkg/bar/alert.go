package bar

// AlertState is an edge-triggered one-shot: it makes an alert side effect
// fire exactly once per continuous bad period instead of once per poll
// tick. One instance exists per alert condition, owned by the source whose
// poll evaluates that condition, and is only ever touched from inside that
// poll, so no locking is needed.
//
// Re-arming happens only on the warned-and-condition-false edge; time
// elapsing alone never re-arms the alert.
type AlertState struct {
	warned bool
}

// Check feeds one observation of the condition into the state machine and
// reports whether the alert side effect should fire now.
//
//	unwarned + true  -> fire, become warned
//	unwarned + false -> no effect
//	warned   + true  -> no effect (suppress repeat)
//	warned   + false -> no effect, become unwarned (armed again)
func (a *AlertState) Check(condition bool) bool {
	switch {
	case condition && !a.warned:
		a.warned = true
		return true
	case !condition && a.warned:
		a.warned = false
	}
	return false
}

// Warned reports whether the alert has fired for the current bad period.
func (a *AlertState) Warned() bool { return a.warned }
