package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// NewAllCallbacks aggregates the observer handlers (prompt, model) into one
// callbacks.Handler. Attach via compose.WithCallbacks when invoking the graph;
// the handlers fire for every eino component the run touches.
func NewAllCallbacks() einocb.Handler {
	modelHandler := newModelHandler()
	promptHandler := newPromptHandler()

	return callbackHelper.NewHandlerHelper().
		ChatModel(modelHandler).
		Prompt(promptHandler).
		Handler()
}
