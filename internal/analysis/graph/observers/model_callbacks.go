package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// newModelHandler builds a typed ModelCallbackHandler to log chat model calls.
func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			evt := logx.Debug().Str("component", info.Type).Str("name", info.Name)
			if input != nil {
				evt = evt.Int("message_count", len(input.Messages))
			}
			evt.Msg("Chat model call started")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			evt := logx.Debug().Str("component", info.Type).Str("name", info.Name)
			if output != nil && output.Message != nil {
				evt = evt.Int("content_len", len(strings.TrimSpace(output.Message.Content)))
				if output.TokenUsage != nil {
					evt = evt.
						Int("prompt_tokens", output.TokenUsage.PromptTokens).
						Int("completion_tokens", output.TokenUsage.CompletionTokens)
				}
			}
			evt.Msg("Chat model call finished")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Type).Str("name", info.Name).Msg("Chat model call failed")
			return ctx
		},
	}
}
