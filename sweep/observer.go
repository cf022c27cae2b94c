package sweep

// Observer receives progress during Run. Calls are serialized by the
// Optimizer; done counts finished evaluations out of total combinations.
type Observer interface {
	OnEvaluated(ev Evaluation, done, total int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Evaluation, done, total int)

// OnEvaluated calls f.
func (f ObserverFunc) OnEvaluated(ev Evaluation, done, total int) { f(ev, done, total) }

// NopObserver ignores every event.
type NopObserver struct{}

// OnEvaluated does nothing.
func (NopObserver) OnEvaluated(Evaluation, int, int) {}

// Observers fans each event out to every member in order.
type Observers []Observer

// OnEvaluated forwards ev to each observer.
func (os Observers) OnEvaluated(ev Evaluation, done, total int) {
	for _, o := range os {
		if o != nil {
			o.OnEvaluated(ev, done, total)
		}
	}
}
