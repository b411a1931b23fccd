package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/reagent"
)

func TestScriptedModel_ReplaysInOrder(t *testing.T) {
	m := &ScriptedModel{Replies: []string{"first", "second"}}

	reply, err := m.Complete(context.Background(), reagent.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	reply, err = m.Complete(context.Background(), reagent.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "second", reply)

	// Past the end of the script the last entry repeats.
	reply, err = m.Complete(context.Background(), reagent.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "second", reply)

	assert.Equal(t, 3, m.Calls())
}

func TestScriptedModel_Err(t *testing.T) {
	boom := errors.New("boom")
	m := &ScriptedModel{Replies: []string{"never"}, Err: boom}

	_, err := m.Complete(context.Background(), reagent.CompletionRequest{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Calls())
}

func TestStaticTool(t *testing.T) {
	tool, err := StaticTool("echo", "always this")
	require.NoError(t, err)
	assert.Equal(t, "echo", tool.Name())
	assert.Empty(t, tool.Required())

	reg := reagent.NewRegistry()
	require.NoError(t, reg.Register(tool))
	d := reagent.NewDispatcher(reg)

	obs := d.Dispatch(context.Background(), reagent.Intent{
		Type:        reagent.IntentAction,
		Action:      "echo",
		ActionInput: []byte(`{"input": "whatever"}`),
	})
	assert.False(t, obs.IsError)
	assert.Equal(t, "always this", obs.Text)
}

func TestScriptedModel_RecordsRequests(t *testing.T) {
	m := &ScriptedModel{Replies: []string{"ok"}}
	assert.Zero(t, m.LastRequest())

	req := reagent.CompletionRequest{
		Model:       "test-model",
		Temperature: 0.2,
		Messages:    []reagent.Message{{Role: reagent.RoleUser, Content: "hi"}},
	}
	_, err := m.Complete(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, m.Requests(), 1)
	assert.Equal(t, req, m.LastRequest())
	assert.Equal(t, "test-model", m.Requests()[0].Model)
}
