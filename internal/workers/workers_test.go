package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWorker struct {
	order *[]string
	name  string
}

func (w recordingWorker) Run() {
	*w.order = append(*w.order, w.name)
}

func TestWorkers_RunStartsWorkersInOrder(t *testing.T) {
	var order []string
	w := NewWorkers(
		recordingWorker{order: &order, name: "first"},
		recordingWorker{order: &order, name: "second"},
	)

	w.Run()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestWorkers_RunWithNoWorkers(t *testing.T) {
	assert.NotPanics(t, func() { NewWorkers().Run() })
}
