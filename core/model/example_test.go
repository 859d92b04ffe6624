package model_test

import (
	"fmt"

	"github.com/housefit/housefit/core/model"
)

// ExampleStateManager demonstrates fitted-state management
func ExampleStateManager() {
	// Create a StateManager (typically composed into estimators)
	state := model.NewStateManager()

	// Check initial state
	fmt.Printf("Initially fitted: %t\n", state.IsFitted())

	// Mark as fitted and record training dimensions
	state.SetFitted()
	state.SetDimensions(2, 100)
	fmt.Printf("After SetFitted: %t\n", state.IsFitted())

	nFeatures, nSamples := state.GetDimensions()
	fmt.Printf("Trained on %d samples with %d features\n", nSamples, nFeatures)

	// Reset to unfitted state
	state.Reset()
	fmt.Printf("After Reset: %t\n", state.IsFitted())

	// Output: Initially fitted: false
	// After SetFitted: true
	// Trained on 100 samples with 2 features
	// After Reset: false
}

// ExampleStateManager_composition demonstrates the composition pattern used
// by estimators
func ExampleStateManager_composition() {
	// This example shows how StateManager is typically composed into models
	type MyModel struct {
		State *model.StateManager
		// model-specific fields would go here
	}

	myModel := &MyModel{State: model.NewStateManager()}

	// Guard prediction paths with RequireFitted
	if err := myModel.State.RequireFitted(); err != nil {
		fmt.Println("Model needs training")

		// ... training logic would go here ...

		myModel.State.SetFitted()
		fmt.Println("Model trained successfully")
	}

	if myModel.State.IsFitted() {
		fmt.Println("Model is ready for predictions")
	}

	// Output: Model needs training
	// Model trained successfully
	// Model is ready for predictions
}
