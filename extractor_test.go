package reagent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cityArgs struct {
	City string `json:"city" description:"City name" enum:"moscow,berlin"`
	Temp *int   `json:"temp,omitempty"`
}

func TestExtractor_SchemaFromStructTags(t *testing.T) {
	ext, err := NewExtractor[cityArgs]()
	require.NoError(t, err)

	schema := ext.Schema()
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	city, ok := props["city"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "City name", city["description"])
	assert.Equal(t, []any{"moscow", "berlin"}, city["enum"])
}

func TestExtractor_ParseAndValidate(t *testing.T) {
	ext, err := NewExtractor[cityArgs]()
	require.NoError(t, err)

	args, err := ext.ParseAndValidate([]byte(`{"city": "moscow"}`))
	require.NoError(t, err)
	assert.Equal(t, "moscow", args.City)
	assert.Nil(t, args.Temp)
}

func TestExtractor_InvalidJSON(t *testing.T) {
	ext, err := NewExtractor[cityArgs]()
	require.NoError(t, err)

	_, err = ext.ParseAndValidate([]byte(`{broken`))
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

func TestExtractor_SchemaViolation(t *testing.T) {
	ext, err := NewExtractor[cityArgs]()
	require.NoError(t, err)

	// Missing required property.
	_, err = ext.ParseAndValidate([]byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsClientError(err))
	assert.ErrorIs(t, err, ErrValidation)

	// Wrong type.
	_, err = ext.ParseAndValidate([]byte(`{"city": 5}`))
	require.Error(t, err)
	assert.True(t, IsClientError(err))
}

type rangeArgs struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (a rangeArgs) Validate() error {
	if a.From > a.To {
		return errors.New("from must not exceed to")
	}
	return nil
}

func TestExtractor_Layer2Validation(t *testing.T) {
	ext, err := NewExtractor[rangeArgs]()
	require.NoError(t, err)

	_, err = ext.ParseAndValidate([]byte(`{"from": 5, "to": 1}`))
	require.Error(t, err)
	assert.True(t, IsClientError(err))
	assert.Contains(t, err.Error(), "from must not exceed to")

	args, err := ext.ParseAndValidate([]byte(`{"from": 1, "to": 5}`))
	require.NoError(t, err)
	assert.Equal(t, rangeArgs{From: 1, To: 5}, args)
}

type money struct {
	amount int64
}

func TestRegisterType_CustomMapping(t *testing.T) {
	RegisterType(money{}, "number", "decimal")

	type payArgs struct {
		Price money `json:"price"`
	}
	ext, err := NewExtractor[payArgs]()
	require.NoError(t, err)

	props, ok := ext.Schema()["properties"].(map[string]any)
	require.True(t, ok)
	price, ok := props["price"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", price["type"])
	assert.Equal(t, "decimal", price["format"])
}
