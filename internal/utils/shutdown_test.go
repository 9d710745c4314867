package utils

import (
	"context"
	"reflect"
	"testing"
)

func TestShutdownManager_TasksRunInRegistrationOrder(t *testing.T) {
	ctx, sm := NewShutdownManager(context.Background())

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		sm.Register(func(context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	for _, task := range sm.tasks {
		if err := task(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if !reflect.DeepEqual(order, []int{0, 1, 2}) {
		t.Errorf("task order = %v", order)
	}

	sm.cancel()
	select {
	case <-ctx.Done():
	default:
		t.Error("base context not cancelled")
	}
}
