package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type reloadRecorder struct {
	products int
	orders   int
	err      error
}

func (r *reloadRecorder) LoadProducts() error {
	r.products++
	return r.err
}

func (r *reloadRecorder) LoadOrders() error {
	r.orders++
	return r.err
}

func TestProcess(t *testing.T) {
	cases := []struct {
		name         string
		event        ChangeEvent
		wantProducts int
		wantOrders   int
	}{
		{"products insert", ChangeEvent{Table: "products", Op: "INSERT"}, 1, 0},
		{"products delete", ChangeEvent{Table: "products", Op: "DELETE"}, 1, 0},
		{"orders update", ChangeEvent{Table: "orders", Op: "UPDATE"}, 0, 1},
		{"op is irrelevant", ChangeEvent{Table: "orders"}, 0, 1},
		{"unknown table ignored", ChangeEvent{Table: "categories"}, 0, 0},
		{"empty event ignored", ChangeEvent{}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &reloadRecorder{}
			consumer := NewConsumer(nil, rec)

			consumer.Process(tc.event)

			assert.Equal(t, tc.wantProducts, rec.products)
			assert.Equal(t, tc.wantOrders, rec.orders)
		})
	}
}

func TestProcess_ReloadFailureDoesNotPanic(t *testing.T) {
	rec := &reloadRecorder{err: errors.New("connection refused")}
	consumer := NewConsumer(nil, rec)

	consumer.Process(ChangeEvent{Table: "products"})
	consumer.Process(ChangeEvent{Table: "orders"})

	assert.Equal(t, 1, rec.products)
	assert.Equal(t, 1, rec.orders)
}
