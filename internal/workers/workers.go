package workers

// Workers aggregates background workers and starts them in order.
type Workers struct {
	workers []Worker
}

// NewWorkers returns an aggregate over the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
