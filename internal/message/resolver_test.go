package message

import (
	"testing"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templates() []model.MessageTemplate {
	return []model.MessageTemplate{
		{ID: 1, Type: model.MessageWelcome, Text: "default welcome"},
		{ID: 2, Type: model.MessageFarewellPurchase, Text: "default farewell"},
		{ID: 3, Type: model.MessageFarewellNoPurchase, Text: "default goodbye"},
	}
}

func TestMergeWithoutOverridesReturnsTemplates(t *testing.T) {
	messages := Merge(templates(), nil)

	require.Len(t, messages, 3)
	for _, m := range messages {
		assert.False(t, m.IsOverride)
	}
	assert.Equal(t, "default welcome", messages[0].Text)
}

func TestMergeOverrideReplacesTemplateText(t *testing.T) {
	overrides := []model.MessageOverride{
		{TenantID: 7, Type: model.MessageWelcome, Text: "¡Hola! Bienvenido a Sabor Criollo"},
	}

	messages := Merge(templates(), overrides)

	require.Len(t, messages, 3)
	assert.Equal(t, Message{
		Type:       model.MessageWelcome,
		Text:       "¡Hola! Bienvenido a Sabor Criollo",
		IsOverride: true,
	}, messages[0])
	// Other types keep the template text untouched.
	assert.False(t, messages[1].IsOverride)
	assert.Equal(t, "default farewell", messages[1].Text)
}

func TestMergeKeepsTemplateOrder(t *testing.T) {
	overrides := []model.MessageOverride{
		{Type: model.MessageFarewellNoPurchase, Text: "chao"},
		{Type: model.MessageWelcome, Text: "hola"},
	}

	messages := Merge(templates(), overrides)

	assert.Equal(t, model.MessageWelcome, messages[0].Type)
	assert.Equal(t, model.MessageFarewellPurchase, messages[1].Type)
	assert.Equal(t, model.MessageFarewellNoPurchase, messages[2].Type)
}

func TestMergeIgnoresOrphanOverrides(t *testing.T) {
	overrides := []model.MessageOverride{
		{Type: "no_such_type", Text: "lost"},
	}

	messages := Merge(templates(), overrides)

	require.Len(t, messages, 3)
	for _, m := range messages {
		assert.False(t, m.IsOverride)
	}
}
