// Package openrouter implements reagent.ModelClient over the OpenRouter
// chat-completions API (OpenAI wire format) using the official OpenAI Go SDK.
package openrouter

import (
	"context"
	"errors"
	"net"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/skosovsky/reagent"
)

// DefaultBaseURL is the OpenRouter API endpoint.
const DefaultBaseURL = "https://api.openrouter.ai/api/v1"

// Client calls OpenRouter and classifies failures into reagent.TransportError.
type Client struct {
	api openai.Client
	log *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL string
	referer string
	title   string
	log     *zap.SugaredLogger
}

// WithBaseURL overrides the API endpoint (e.g. for an OpenAI-compatible proxy).
func WithBaseURL(url string) Option {
	return func(o *clientOptions) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithAppInfo sets the optional HTTP-Referer and X-Title headers OpenRouter
// uses for app rankings.
func WithAppInfo(referer, title string) Option {
	return func(o *clientOptions) {
		o.referer = referer
		o.title = title
	}
}

// WithLogger sets the client's logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *clientOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates a Client. apiKey must not be empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	o := clientOptions{
		baseURL: DefaultBaseURL,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(o.baseURL),
	}
	if o.referer != "" {
		reqOpts = append(reqOpts, option.WithHeader("HTTP-Referer", o.referer))
	}
	if o.title != "" {
		reqOpts = append(reqOpts, option.WithHeader("X-Title", o.title))
	}
	return &Client{
		api: openai.NewClient(reqOpts...),
		log: o.log.With("component", "openrouter"),
	}, nil
}

// Complete sends one transcript and returns the assistant completion text.
// Any failure is a *reagent.TransportError.
func (c *Client) Complete(ctx context.Context, req reagent.CompletionRequest) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    toUnionMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(req.MaxTokens),
	})
	if err != nil {
		terr := classify(err)
		c.log.Errorw("completion failed", "model", req.Model, "error", terr)
		return "", terr
	}
	if len(completion.Choices) == 0 {
		terr := &reagent.TransportError{
			Kind: reagent.TransportNetwork,
			Err:  errors.New("response contained no choices"),
		}
		c.log.Errorw("completion failed", "model", req.Model, "error", terr)
		return "", terr
	}
	content := completion.Choices[0].Message.Content
	c.log.Debugw("completion received",
		"model", req.Model,
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens)
	return content, nil
}

func toUnionMessages(msgs []reagent.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case reagent.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case reagent.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// classify maps SDK and network failures onto the transport taxonomy.
func classify(err error) *reagent.TransportError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &reagent.TransportError{Kind: reagent.TransportTimeout, Err: err}
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		kind := reagent.TransportNetwork
		switch apierr.StatusCode {
		case 401, 403:
			kind = reagent.TransportAuth
		case 408:
			kind = reagent.TransportTimeout
		case 429:
			kind = reagent.TransportRateLimit
		}
		return &reagent.TransportError{Kind: kind, StatusCode: apierr.StatusCode, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &reagent.TransportError{Kind: reagent.TransportTimeout, Err: err}
	}
	return &reagent.TransportError{Kind: reagent.TransportNetwork, Err: err}
}

var _ reagent.ModelClient = (*Client)(nil)
