package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/envokin/pkg/envokin/schema"
)

func TestKinds(t *testing.T) {
	kinds := schema.Kinds()
	assert.Len(t, kinds, 13)

	for _, k := range kinds {
		parsed, ok := schema.ParseKind(string(k))
		assert.True(t, ok, k)
		assert.Equal(t, k, parsed)
		assert.True(t, k.Valid())
	}

	// The returned slice is a copy.
	kinds[0] = "mutated"
	assert.Equal(t, schema.Host, schema.Kinds()[0])
}

func TestParseKind_Unknown(t *testing.T) {
	for _, s := range []string{"", "HOST", "array:separator=;", "int", "custom"} {
		_, ok := schema.ParseKind(s)
		assert.False(t, ok, s)
		assert.False(t, schema.Kind(s).Valid(), s)
	}
}

func TestSchema_Keys(t *testing.T) {
	s := schema.Schema{"ZETA": schema.String, "ALPHA": schema.Port, "MID": schema.JSON}
	assert.Equal(t, []string{"ALPHA", "MID", "ZETA"}, s.Keys())
	assert.Empty(t, schema.Schema{}.Keys())
}

func TestSchema_Clone(t *testing.T) {
	s := schema.Schema{"A": schema.String}
	c := s.Clone()
	c["B"] = schema.Number

	assert.Len(t, s, 1)
	assert.Len(t, c, 2)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "port", schema.Describe(schema.Port))
	assert.Equal(t, "array:separator=,", schema.Describe(schema.CommaList))
	assert.Equal(t, "custom", schema.Describe(schema.Func(nil, nil)))
}

func TestAsCustom(t *testing.T) {
	entry := schema.Func(func(string, any) bool { return false }, nil)
	c, ok := schema.AsCustom(entry)
	require.True(t, ok)
	assert.False(t, c.Validates("K", "v"))
	assert.Equal(t, "v", c.Transform("v"))

	_, ok = schema.AsCustom(schema.Port)
	assert.False(t, ok)

	_, ok = schema.AsCustom(schema.Use(nil))
	assert.False(t, ok)
}

func TestCustomFunc_NilFuncs(t *testing.T) {
	var f schema.CustomFunc
	assert.True(t, f.Validates("K", nil))
	assert.Equal(t, 3, f.Transform(3))
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, schema.Schema{"A": schema.Host, "B": schema.Func(nil, nil)}.Validate())
	require.NoError(t, schema.Schema{}.Validate())

	err := schema.Schema{"A": schema.Host, "B": schema.Kind("float")}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"B"`)
}
